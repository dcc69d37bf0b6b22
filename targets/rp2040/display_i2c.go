//go:build rp2040 && lcdi2c

package main

import (
	"machine"

	"tinygo.org/x/drivers/hd44780i2c"

	"potlcd/config"
	"potlcd/core"
)

// i2cDisplay adapts a PCF8574 backpack panel to core.Display
type i2cDisplay struct {
	dev        hd44780i2c.Device
	cols, rows uint8
}

// newDisplay drives the panel through the I2C backpack on I2C0
func newDisplay(cols, rows uint8) core.Display {
	return &i2cDisplay{cols: cols, rows: rows}
}

func (d *i2cDisplay) Init() error {
	err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       config.LCDSDA,
		SCL:       config.LCDSCL,
	})
	if err != nil {
		return err
	}
	d.dev = hd44780i2c.New(machine.I2C0, config.LCDAddress)
	return d.dev.Configure(hd44780i2c.Config{Width: d.cols, Height: d.rows})
}

func (d *i2cDisplay) Clear() error {
	d.dev.ClearDisplay()
	d.dev.Home()
	return nil
}

func (d *i2cDisplay) SetCursor(col, row uint8) error {
	d.dev.SetCursor(col, row)
	return nil
}

func (d *i2cDisplay) Print(text []byte) error {
	d.dev.Print(text)
	return nil
}
