//go:build rp2040

package main

import (
	"machine"

	"potlcd/core"
)

// InitUSB brings up the USB CDC console
func InitUSB() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

// InitDebug routes core debug output to the USB console
func InitDebug(enabled bool) {
	core.SetDebugWriter(usbPrintln)
	core.SetDebugEnabled(enabled)
}

func usbPrintln(s string) {
	machine.Serial.Write([]byte(s))
	machine.Serial.Write([]byte("\r\n"))
}
