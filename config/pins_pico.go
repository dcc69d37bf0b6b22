//go:build rp2040

package config

import (
	"machine"

	"potlcd/core"
)

var (
	Switch = core.GPIOPin(machine.GP1)

	// ADC0 is GPIO26, ADC1 is GPIO27
	PotChannel   = core.ADCChannelID(0)
	PhotoChannel = core.ADCChannelID(1)

	LCDRS   = core.GPIOPin(machine.GP2)
	LCDEn   = core.GPIOPin(machine.GP3)
	LCDData = [8]core.GPIOPin{
		core.GPIOPin(machine.GP4), core.GPIOPin(machine.GP5),
		core.GPIOPin(machine.GP6), core.GPIOPin(machine.GP7),
		core.GPIOPin(machine.GP8), core.GPIOPin(machine.GP9),
		core.GPIOPin(machine.GP10), core.GPIOPin(machine.GP11),
	}

	// I2C backpack variant
	LCDSDA = machine.GP20
	LCDSCL = machine.GP21
)

const (
	LCDAddress = 0x27
	DebugOn    = true
)
