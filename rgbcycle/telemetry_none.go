//go:build tinygo && !pico_w

package main

import (
	"log/slog"
	"time"

	"github.com/harveysanders/rgbcycle/rgbcycle/drive"
	"github.com/harveysanders/rgbcycle/rgbcycle/lcd"
)

// startTelemetry is a no-op on boards without a radio.
func startTelemetry(*slog.Logger, string, time.Time, chan<- lcd.Message) chan<- drive.Event {
	return nil
}
