//go:build xiao_rp2040

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"

	"github.com/harveysanders/rgbcycle/rgbcycle/drive"
	"github.com/harveysanders/rgbcycle/rgbcycle/pwm"
)

// The Seeed XIAO RP2040 has a WS2812 on GPIO12, powered through GPIO11.
// https://wiki.seeedstudio.com/XIAO-RP2040-with-Arduino/
var (
	neoPower = machine.GPIO11
	neoData  = machine.GPIO12
)

// Status LCD on the XIAO's D4/D5 header pins, which the RP2040 routes to I2C1.
var (
	lcdBus = machine.I2C1
	lcdSDA = machine.GPIO6
	lcdSCL = machine.GPIO7
)

type neoPixel struct {
	dev ws2812.Device
	buf [1]color.RGBA
}

func newOutput() (drive.Output, error) {
	neoPower.Configure(machine.PinConfig{Mode: machine.PinOutput})
	neoPower.High()
	neoData.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &neoPixel{dev: ws2812.New(neoData)}, nil
}

// Show scales each channel like the PWM board, green included.
func (n *neoPixel) Show(r, g, b uint32) error {
	n.buf[0] = color.RGBA{
		R: level(r, pwm.DefaultScale),
		G: level(g, pwm.GreenScale),
		B: level(b, pwm.DefaultScale),
		A: 0xff,
	}
	return n.dev.WriteColors(n.buf[:])
}

func level(v, scale uint32) uint8 {
	if v > scale {
		v = scale
	}
	return uint8(pwm.Duty(v, scale, 0xff))
}
