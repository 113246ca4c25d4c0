// Package pwm maps color intensities onto hardware PWM channels.
//
// Each Channel carries its own scale: an intensity equal to the scale is a
// 100% duty cycle. Red and blue use DefaultScale. Green uses GreenScale, so
// full green is rendered at roughly half duty.
package pwm

import "errors"

const (
	DefaultScale uint32 = 255
	// GreenScale tones down the green LED, which looks much brighter than
	// red or blue at the same duty cycle.
	GreenScale uint32 = 512
)

var errZeroScale = errors.New("pwm: zero scale")

// Group is the subset of a TinyGo PWM peripheral (machine.PWM0...) used here.
type Group interface {
	Set(channel uint8, value uint32)
	Top() uint32
}

// Channel is one output of a Group.
type Channel struct {
	Group Group
	Index uint8
	Scale uint32
}

// Set writes intensity v. Values above the scale are clamped.
func (c Channel) Set(v uint32) error {
	if c.Scale == 0 {
		return errZeroScale
	}
	if v > c.Scale {
		v = c.Scale
	}
	c.Group.Set(c.Index, Duty(v, c.Scale, c.Group.Top()))
	return nil
}

// Duty converts intensity v out of scale into a counter value out of top.
func Duty(v, scale, top uint32) uint32 {
	if scale == 0 {
		return 0
	}
	// 64-bit intermediate: top can be 0xffff on RP2040.
	return uint32(uint64(v) * uint64(top) / uint64(scale))
}

// Triple drives a common RGB LED. Channel A is red, B green, C blue.
type Triple struct {
	Red   Channel
	Green Channel
	Blue  Channel
}

// Show writes one intensity triple.
func (t Triple) Show(r, g, b uint32) error {
	if err := t.Red.Set(r); err != nil {
		return errors.New("red channel: " + err.Error())
	}
	if err := t.Green.Set(g); err != nil {
		return errors.New("green channel: " + err.Error())
	}
	if err := t.Blue.Set(b); err != nil {
		return errors.New("blue channel: " + err.Error())
	}
	return nil
}
