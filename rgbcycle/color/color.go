// Package color holds the three-state color cycle that drives the RGB LED.
//
// A Color is a closed set of values. Intensities and Advance switch over
// every member, so adding a color means touching both in the same place.
package color

// Color is the currently selected LED color.
type Color uint8

const (
	Red Color = iota
	Green
	Blue
)

// Max is the intensity of the active channel.
const Max uint32 = 255

// Initial is the color the drive loop starts with.
const Initial = Red

// Valid reports whether c is one of Red, Green or Blue.
func (c Color) Valid() bool {
	return c <= Blue
}

// RGB is shorthand for Intensities(c).
func (c Color) RGB() (r, g, b uint32) {
	return Intensities(c)
}

// Next is shorthand for Advance(c).
func (c Color) Next() Color {
	return Advance(c)
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return "invalid"
}

// Intensities returns the red, green and blue channel values for c.
// Exactly one channel is at Max, the one matching the color's name.
// Values outside the set are treated as Red.
func Intensities(c Color) (r, g, b uint32) {
	switch c {
	case Green:
		return 0, Max, 0
	case Blue:
		return 0, 0, Max
	default:
		return Max, 0, 0
	}
}

// Advance returns the successor of c: Red, Green, Blue, then Red again.
// Values outside the set advance as if they were Red.
func Advance(c Color) Color {
	switch c {
	case Green:
		return Blue
	case Blue:
		return Red
	default:
		return Green
	}
}
