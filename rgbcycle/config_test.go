package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, errs := loadSettings("", "", "", "")
	require.Empty(t, errs)
	assert.Equal(t, 500*time.Millisecond, s.drive.Hold)
	assert.Equal(t, 500*time.Millisecond, s.drive.Gap)
	assert.Equal(t, uint32(115200), s.baud)
	assert.Equal(t, defaultBroker, s.broker)
}

func TestLoadSettingsOverrides(t *testing.T) {
	s, errs := loadSettings("250ms", "1s", "9600", "broker.local:1883")
	require.Empty(t, errs)
	assert.Equal(t, 250*time.Millisecond, s.drive.Hold)
	assert.Equal(t, time.Second, s.drive.Gap)
	assert.Equal(t, uint32(9600), s.baud)
	assert.Equal(t, "broker.local:1883", s.broker)
}

func TestLoadSettingsInvalidKeepsDefaults(t *testing.T) {
	s, errs := loadSettings("soon", "-1s", "0", "")
	assert.Len(t, errs, 3)
	assert.Equal(t, 500*time.Millisecond, s.drive.Hold)
	assert.Equal(t, 500*time.Millisecond, s.drive.Gap)
	assert.Equal(t, uint32(115200), s.baud)
}
