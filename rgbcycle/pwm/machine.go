//go:build tinygo

package pwm

import (
	"errors"
	"machine"
)

// Peripheral is a TinyGo PWM group such as machine.PWM0.
type Peripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Group
}

// Configure sets the carrier period (in nanoseconds) on p and hands pin over
// to it. Call it once per pin at start-up.
func Configure(p Peripheral, pin machine.Pin, period uint64, scale uint32) (Channel, error) {
	err := p.Configure(machine.PWMConfig{Period: period})
	if err != nil {
		return Channel{}, errors.New("configure PWM: " + err.Error())
	}
	// Channel switches the pin to its PWM function.
	ch, err := p.Channel(pin)
	if err != nil {
		return Channel{}, errors.New("get channel for pin: " + err.Error())
	}
	return Channel{Group: p, Index: ch, Scale: scale}, nil
}
