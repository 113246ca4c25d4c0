//go:build tinygo && !xiao_rp2040

package main

import (
	"errors"
	"machine"
	"time"

	"github.com/harveysanders/rgbcycle/rgbcycle/drive"
	"github.com/harveysanders/rgbcycle/rgbcycle/pwm"
)

// Common-cathode RGB LED on three separate PWM slices of the RP2040/RP2350.
// GPn is driven by slice (n/2)%8, channel n%2.
var (
	redPin   = machine.GP16 // PWM0 A
	greenPin = machine.GP18 // PWM1 A
	bluePin  = machine.GP20 // PWM2 A
)

// Status LCD backpack.
var (
	lcdBus = machine.I2C0
	lcdSDA = machine.GP4
	lcdSCL = machine.GP5
)

// 1kHz carrier: well above visible flicker.
const carrierPeriod = uint64(time.Second) / 1000

func newOutput() (drive.Output, error) {
	red, err := pwm.Configure(machine.PWM0, redPin, carrierPeriod, pwm.DefaultScale)
	if err != nil {
		return nil, errors.New("red: " + err.Error())
	}
	green, err := pwm.Configure(machine.PWM1, greenPin, carrierPeriod, pwm.GreenScale)
	if err != nil {
		return nil, errors.New("green: " + err.Error())
	}
	blue, err := pwm.Configure(machine.PWM2, bluePin, carrierPeriod, pwm.DefaultScale)
	if err != nil {
		return nil, errors.New("blue: " + err.Error())
	}
	return pwm.Triple{Red: red, Green: green, Blue: blue}, nil
}
