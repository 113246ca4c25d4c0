//go:build pico_w

package main

import (
	"log/slog"
	"time"

	"github.com/harveysanders/rgbcycle/rgbcycle/cyw43439"
	"github.com/harveysanders/rgbcycle/rgbcycle/drive"
	"github.com/harveysanders/rgbcycle/rgbcycle/lcd"
	"github.com/harveysanders/rgbcycle/rgbcycle/mqtt"
)

// startTelemetry joins WiFi in the background and publishes drive events to
// the broker. The returned channel is registered as a loop listener; events
// are dropped until the connection is up.
func startTelemetry(logger *slog.Logger, broker string, boot time.Time, lcdMessages chan<- lcd.Message) chan<- drive.Event {
	// Buffered channel of 16 events. A full buffer drops events rather than
	// slowing the LED cycle.
	events := make(chan drive.Event, 16)
	go func() {
		lcd.Send(lcdMessages, "WiFi", "joining...")
		stack, err := cyw43439.Connect(cyw43439.Config{
			Hostname:    "rgbcycle",
			MaxTCPConns: 1,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("telemetry disabled", slog.String("reason", err.Error()))
			lcd.Send(lcdMessages, "WiFi failed", err.Error())
			// Keep the channel drained so nothing piles up.
			for range events {
			}
			return
		}
		c := mqtt.Client{
			ID:                "rgbcycle",
			Logger:            logger,
			Timeout:           5 * time.Second,
			TCPBufSize:        2030, // MTU - ethhdr - iphdr - tcphdr
			HeartbeatInterval: 30 * time.Second,
			Boot:              boot,
		}
		if err := c.ConnectAndPublish(stack.Lneto(), broker, events, lcdMessages); err != nil {
			logger.Error("telemetry stopped", slog.String("reason", err.Error()))
			for range events {
			}
		}
	}()
	return events
}
