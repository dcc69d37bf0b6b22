//go:build rp2040

package main

import (
	"machine"
	"time"

	"potlcd/config"
	"potlcd/core"
)

func main() {
	// Clear any watchdog left running from a previous image
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitUSB()
	InitDebug(config.DebugOn)
	core.InitAsyncDebug()
	InitClock()

	core.SetGPIODriver(NewRPGPIODriver())
	core.SetADCDriver(NewRPAdcDriver())

	cfg := core.DefaultConfig()
	cfg.SwitchPin = config.Switch
	cfg.PotChannel = config.PotChannel
	cfg.PhotoChannel = config.PhotoChannel

	fw := core.NewFirmware(cfg, newDisplay(cfg.DisplayCols, cfg.DisplayRows))
	fw.Sched.SetAlarm(InitAlarm(fw.Sched))

	if err := fw.Setup(); err != nil {
		core.SetDebugEnabled(true)
		core.DebugPrintln("[FW] setup failed: " + err.Error())
		core.DumpEventRing()
		for {
			time.Sleep(time.Second)
		}
	}

	fw.Run(func() {
		UpdateSystemTime()
		time.Sleep(100 * time.Microsecond)
	})
}
