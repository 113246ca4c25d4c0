// Package drive runs the LED color cycle and echoes bytes received on the UART.
package drive

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/harveysanders/rgbcycle/rgbcycle/color"
)

// Output shows one intensity triple on the LED.
type Output interface {
	Show(r, g, b uint32) error
}

// Serial is the echo port. *machine.UART satisfies it.
type Serial interface {
	io.Writer
	io.ByteReader
	// Buffered returns the number of bytes ready to be read.
	Buffered() int
}

// Config holds the loop timing.
type Config struct {
	// Hold is how long each color is shown before the cycle advances.
	Hold time.Duration
	// Gap is the wait after the UART has been drained.
	Gap time.Duration
	// MaxDrain caps the bytes echoed per drain. 0 means drain until empty.
	MaxDrain int
}

// DefaultConfig returns 500ms holds and an unbounded drain.
func DefaultConfig() Config {
	return Config{
		Hold: 500 * time.Millisecond,
		Gap:  500 * time.Millisecond,
	}
}

// Loop owns the LED output and echo port for the lifetime of the program.
type Loop struct {
	Output Output
	Serial Serial
	Config Config
	Logger *slog.Logger
	// Sleep blocks for d. Defaults to time.Sleep.
	Sleep func(d time.Duration)
	// Listeners receive events without blocking the loop. A listener
	// whose buffer is full misses the event.
	Listeners []chan<- Event

	step    uint64
	shown   color.Color
	lineBuf []byte
}

// Run starts at color.Initial and steps forever. It only returns on a fatal
// output or serial write error.
func (l *Loop) Run() error {
	c := color.Initial
	for {
		var err error
		c, err = l.Step(c)
		if err != nil {
			return err
		}
	}
}

// Step shows c, waits, advances, drains the UART and waits again.
// It returns the next color.
func (l *Loop) Step(c color.Color) (color.Color, error) {
	if err := l.Apply(c); err != nil {
		return c, err
	}
	l.sleep(l.Config.Hold)

	next := color.Advance(c)

	if _, err := l.Drain(); err != nil {
		return next, err
	}
	l.sleep(l.Config.Gap)
	return next, nil
}

// Apply pushes the intensities of c to the output.
func (l *Loop) Apply(c color.Color) error {
	r, g, b := color.Intensities(c)
	if err := l.Output.Show(r, g, b); err != nil {
		return errors.New("show " + c.String() + ": " + err.Error())
	}
	l.step++
	l.shown = c
	l.logger().Debug("color", slog.String("color", c.String()), slog.Uint64("step", l.step))
	l.notify(Event{Kind: ColorApplied, Step: l.step, Color: c})
	return nil
}

// Drain echoes every byte currently waiting on the serial port as a
// "byte read <n>" line and returns how many were echoed. An empty port ends
// the drain and is not an error.
func (l *Loop) Drain() (int, error) {
	if l.Serial == nil {
		return 0, nil
	}
	n := 0
	for l.Serial.Buffered() > 0 {
		if l.Config.MaxDrain > 0 && n >= l.Config.MaxDrain {
			break
		}
		b, err := l.Serial.ReadByte()
		if err != nil {
			// Buffered raced with the receive FIFO: nothing left.
			break
		}
		if err := l.echo(b); err != nil {
			return n, err
		}
		n++
		l.notify(Event{Kind: ByteEchoed, Step: l.step, Color: l.shown, Byte: b})
	}
	return n, nil
}

func (l *Loop) echo(b byte) error {
	if l.lineBuf == nil {
		l.lineBuf = make([]byte, 0, len(echoPrefix)+4)
	}
	l.lineBuf = append(l.lineBuf[:0], echoPrefix...)
	l.lineBuf = strconv.AppendUint(l.lineBuf, uint64(b), 10)
	l.lineBuf = append(l.lineBuf, '\n')
	if _, err := l.Serial.Write(l.lineBuf); err != nil {
		return errors.New("echo byte " + strconv.Itoa(int(b)) + ": " + err.Error())
	}
	return nil
}

const echoPrefix = "byte read "

func (l *Loop) notify(ev Event) {
	for _, ch := range l.Listeners {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (l *Loop) sleep(d time.Duration) {
	if l.Sleep != nil {
		l.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
