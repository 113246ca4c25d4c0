//go:build tinygo

package main

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/hd44780i2c"
)

// configureLCD sets up the board's LCD bus (lcdBus on lcdSDA/lcdSCL) and
// looks for an HD44780 backpack on the common PCF8574 addresses (0x27, 0x3F).
func configureLCD() (*hd44780i2c.Device, error) {
	i2c := lcdBus
	err := i2c.Configure(machine.I2CConfig{
		SDA: lcdSDA,
		SCL: lcdSCL,
	})
	if err != nil {
		return nil, errors.New("configure I2C: " + err.Error())
	}

	probe := make([]byte, 1)
	for _, addr := range []uint8{0x27, 0x3F} {
		if i2c.Tx(uint16(addr), nil, probe) != nil {
			continue
		}
		dev := hd44780i2c.New(i2c, addr)
		dev.Configure(hd44780i2c.Config{
			Width:  16,
			Height: 2,
		})
		dev.ClearDisplay()
		return &dev, nil
	}
	return nil, errors.New("LCD not found on addresses: 0x27, 0x3f")
}
