// Package lcd shows drive loop status on an HD44780 16x2 character LCD.
//
// Example usage:
//
//	messages := make(chan lcd.Message, 4)
//	handler := lcd.NewHandler(&device, messages, logger)
//	go handler.Run()
//
//	// Send messages non-blocking
//	lcd.Send(messages, "color: red", "")
package lcd

import (
	"log/slog"
	"strconv"

	"github.com/harveysanders/rgbcycle/rgbcycle/drive"
)

// Device is the subset of hd44780i2c.Device used by Handler.
type Device interface {
	ClearDisplay()
	SetCursor(x, y uint8)
	Print(data []byte)
}

// Message represents a two-line LCD message.
type Message struct {
	Line1 []byte
	Line2 []byte
}

// Handler processes LCD messages from a channel.
type Handler struct {
	device   Device
	messages <-chan Message
	logger   *slog.Logger
	columns  int
}

// NewHandler creates a new 16x2 LCD message handler.
func NewHandler(device Device, messages <-chan Message, logger *slog.Logger) *Handler {
	return &Handler{
		device:   device,
		messages: messages,
		logger:   logger,
		columns:  16,
	}
}

// Run processes messages from the channel and updates the LCD until the
// channel is closed. Run should be called in a separate goroutine.
func (h *Handler) Run() {
	for msg := range h.messages {
		h.display(msg)
	}
	h.logger.Debug("lcd:handler stopped")
}

// display prints msg to the LCD.
func (h *Handler) display(msg Message) {
	h.device.ClearDisplay()
	h.device.SetCursor(0, 0)
	h.device.Print(truncate(msg.Line1, h.columns))
	h.device.SetCursor(0, 1)
	h.device.Print(truncate(msg.Line2, h.columns))
}

// truncate in-place, no allocation.
func truncate(line []byte, n int) []byte {
	if len(line) > n {
		return line[:n]
	}
	return line
}

// Send offers a message to ch. If the channel is full the message is dropped.
func Send(ch chan<- Message, line1, line2 string) {
	if ch == nil {
		return
	}
	select {
	case ch <- Message{Line1: []byte(line1), Line2: []byte(line2)}:
	default:
	}
}

// FromEvent renders a drive loop event as an LCD message.
//
//	color: green
//	step 12
//
// or, for an echoed byte,
//
//	color: green
//	rx: 65 'A'
func FromEvent(ev drive.Event) Message {
	line1 := append([]byte("color: "), ev.Color.String()...)
	var line2 []byte
	switch ev.Kind {
	case drive.ByteEchoed:
		line2 = append(line2, "rx: "...)
		line2 = strconv.AppendUint(line2, uint64(ev.Byte), 10)
		if ev.Byte >= 0x20 && ev.Byte < 0x7f {
			line2 = append(line2, ' ', '\'', ev.Byte, '\'')
		}
	default:
		line2 = append(line2, "step "...)
		line2 = strconv.AppendUint(line2, ev.Step, 10)
	}
	return Message{Line1: line1, Line2: line2}
}

// Forward renders every event from events onto messages until events is
// closed. Messages are dropped while the LCD is busy.
func Forward(events <-chan drive.Event, messages chan<- Message) {
	for ev := range events {
		select {
		case messages <- FromEvent(ev):
		default:
		}
	}
}
