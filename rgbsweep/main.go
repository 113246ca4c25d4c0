//go:build tinygo

// rgbsweep ramps each channel of the RGB LED up and back down, in cycle
// order, to check the wiring before flashing rgbcycle.
package main

import (
	"machine"
	"time"

	"github.com/harveysanders/rgbcycle/rgbcycle/color"
	"github.com/harveysanders/rgbcycle/rgbcycle/pwm"
)

// Same pins as rgbcycle's PWM board.
var (
	redPin   = machine.GP16
	greenPin = machine.GP18
	bluePin  = machine.GP20
)

func main() {
	// RP2040/RP2350 PWM uses a 16-bit counter + max ~256x divider; a 200 Hz
	// carrier is fine for a visual check.
	const period = uint64(5 * time.Millisecond)

	red, err := pwm.Configure(machine.PWM0, redPin, period, pwm.DefaultScale)
	if err != nil {
		halt("could not configure red channel: " + err.Error())
	}
	green, err := pwm.Configure(machine.PWM1, greenPin, period, pwm.GreenScale)
	if err != nil {
		halt("could not configure green channel: " + err.Error())
	}
	blue, err := pwm.Configure(machine.PWM2, bluePin, period, pwm.DefaultScale)
	if err != nil {
		halt("could not configure blue channel: " + err.Error())
	}
	led := pwm.Triple{Red: red, Green: green, Blue: blue}

	c := color.Initial
	for {
		println("sweeping", c.String())
		if err := sweep(led, c, time.Sleep); err != nil {
			halt(err.Error())
		}
		c = c.Next()
	}
}

func halt(msg string) {
	for {
		println(msg)
		time.Sleep(time.Second)
	}
}
