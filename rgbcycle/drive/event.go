package drive

import "github.com/harveysanders/rgbcycle/rgbcycle/color"

// EventKind says what an Event reports.
type EventKind uint8

const (
	// ColorApplied is sent after a color has been pushed to the output.
	ColorApplied EventKind = iota + 1
	// ByteEchoed is sent after a received byte has been echoed.
	ByteEchoed
)

func (k EventKind) String() string {
	switch k {
	case ColorApplied:
		return "color"
	case ByteEchoed:
		return "byte"
	}
	return "unknown"
}

// Event is a copy of loop state handed to listeners such as the status LCD
// or the MQTT publisher.
type Event struct {
	Kind  EventKind
	Step  uint64      // Number of colors applied so far.
	Color color.Color // Color on the LED when the event was sent.
	Byte  byte        // Set for ByteEchoed.
}
