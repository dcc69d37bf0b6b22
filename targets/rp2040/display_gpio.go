//go:build rp2040 && !lcdpio && !lcdi2c

package main

import (
	"machine"

	"potlcd/config"
	"potlcd/core"
)

// newDisplay drives the panel by bit-banging E, RS and DB0..7. Strobe
// timing uses the nop loop, trimmed once against the 1 MHz counter;
// instruction settle times use the counter itself.
func newDisplay(cols, rows uint8) core.Display {
	strobe := core.NewCycleDelay(machine.CPUFrequency())
	core.CalibrateCycleDelay(strobe, GetHardwareTime, 1000, 4)

	bus := core.NewGPIOBus(config.LCDRS, config.LCDEn, config.LCDData, strobe)
	return core.NewLCD(bus, core.NewTickDelay(GetHardwareTime), cols, rows)
}
