package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harveysanders/rgbcycle/rgbcycle/color"
)

type ledLog struct {
	shows  [][3]uint32
	failAt int // 1-based Show call that fails, 0 never
}

func (l *ledLog) Show(r, g, b uint32) error {
	if l.failAt > 0 && len(l.shows)+1 == l.failAt {
		return errors.New("pwm gone")
	}
	l.shows = append(l.shows, [3]uint32{r, g, b})
	return nil
}

func TestSweepRampsOneChannel(t *testing.T) {
	led := &ledLog{}
	sleeps := 0
	require.NoError(t, sweep(led, color.Green, func(time.Duration) { sleeps++ }))

	// Up 0..255, down 255..1, then off.
	require.Len(t, led.shows, 256+255+1)
	assert.Equal(t, [3]uint32{0, 0, 0}, led.shows[0])
	assert.Equal(t, [3]uint32{0, 255, 0}, led.shows[255])
	assert.Equal(t, [3]uint32{0, 1, 0}, led.shows[len(led.shows)-2])
	assert.Equal(t, [3]uint32{0, 0, 0}, led.shows[len(led.shows)-1])
	for _, s := range led.shows {
		assert.Zero(t, s[0])
		assert.Zero(t, s[2])
	}
	assert.Equal(t, 256+255, sleeps)
}

func TestSweepStopsOnShowError(t *testing.T) {
	led := &ledLog{failAt: 10}
	err := sweep(led, color.Blue, func(time.Duration) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep blue")
	assert.Len(t, led.shows, 9)
}
