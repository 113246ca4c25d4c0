//go:build tinygo

package main

import (
	"log/slog"
	"machine"
	"time"

	"github.com/harveysanders/rgbcycle/rgbcycle/drive"
	"github.com/harveysanders/rgbcycle/rgbcycle/lcd"
	"github.com/harveysanders/rgbcycle/rgbcycle/serial"
)

func main() {
	boot := time.Now()
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, errs := loadSettings(hold, gap, baud, broker)
	for _, err := range errs {
		logger.Warn("ignoring link-time setting", slog.String("err", err.Error()))
	}

	err := machine.UART0.Configure(machine.UARTConfig{
		BaudRate: cfg.baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	if err != nil {
		printErrForever(logger, "configure UART0", slog.String("reason", err.Error()))
	}

	out, err := newOutput()
	if err != nil {
		printErrForever(logger, "configure LED output", slog.String("reason", err.Error()))
	}

	loop := &drive.Loop{
		Output: out,
		Serial: serial.NewPort(machine.UART0),
		Config: cfg.drive,
		Logger: logger,
	}

	// Optional status LCD.
	lcdMessages := make(chan lcd.Message, 4)
	if dev, err := configureLCD(); err != nil {
		logger.Info("no status LCD", slog.String("reason", err.Error()))
		lcdMessages = nil
	} else {
		go lcd.NewHandler(dev, lcdMessages, logger).Run()
		lcdEvents := make(chan drive.Event, 4)
		go lcd.Forward(lcdEvents, lcdMessages)
		loop.Listeners = append(loop.Listeners, lcdEvents)
	}

	if events := startTelemetry(logger, cfg.broker, boot, lcdMessages); events != nil {
		loop.Listeners = append(loop.Listeners, events)
	}

	logger.Info("rgbcycle:start",
		slog.Duration("hold", cfg.drive.Hold),
		slog.Duration("gap", cfg.drive.Gap),
		slog.Uint64("baud", uint64(cfg.baud)),
	)
	err = loop.Run()
	printErrForever(logger, "drive loop stopped", slog.String("reason", err.Error()))
}

// printErrForever prints a message to serial @ 1hz. It blocks forever, so
// nothing after it runs.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
