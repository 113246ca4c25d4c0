package main

import (
	"errors"
	"time"

	"github.com/harveysanders/rgbcycle/rgbcycle/color"
	"github.com/harveysanders/rgbcycle/rgbcycle/drive"
)

const rampStep = 5 * time.Millisecond

// sweep ramps the channel of c from off to full and back, then turns the
// LED off. It stops at the first failed write.
func sweep(led drive.Output, c color.Color, sleep func(time.Duration)) error {
	r, g, b := c.RGB()
	show := func(i uint32) error {
		if err := led.Show(r*i/color.Max, g*i/color.Max, b*i/color.Max); err != nil {
			return errors.New("sweep " + c.String() + ": " + err.Error())
		}
		sleep(rampStep)
		return nil
	}
	for i := uint32(0); i <= color.Max; i++ {
		if err := show(i); err != nil {
			return err
		}
	}
	for i := color.Max; i > 0; i-- {
		if err := show(i); err != nil {
			return err
		}
	}
	if err := led.Show(0, 0, 0); err != nil {
		return errors.New("sweep " + c.String() + ": " + err.Error())
	}
	return nil
}
