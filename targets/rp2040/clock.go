//go:build rp2040

package main

import (
	"device/rp"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"

	"potlcd/core"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word
)

// The scheduler owns ALARM1; TinyGo's runtime keeps ALARM0 for sleep.
const schedAlarm = 1

var (
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

	alarmSched *core.Scheduler
)

// InitClock syncs core time with the 1 MHz hardware timer
func InitClock() {
	UpdateSystemTime()
}

// GetHardwareTime returns the low 32 bits of the microsecond counter
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// UpdateSystemTime copies hardware time into the core clock
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}

// InitAlarm routes ALARM1 to sched.Dispatch and returns the hook the
// scheduler calls whenever its earliest wake time changes.
func InitAlarm(sched *core.Scheduler) func(wake uint32) {
	alarmSched = sched
	rp.TIMER.INTE.SetBits(1 << schedAlarm)
	intr := interrupt.New(rp.IRQ_TIMER_IRQ_1, handleAlarm)
	intr.Enable()
	return armAlarm
}

func armAlarm(wake uint32) {
	rp.TIMER.ALARM1.Set(wake)
	// Arming a time that has already passed would wait a full counter wrap
	if int32(wake-GetHardwareTime()) <= 0 {
		rp.TIMER.INTF.SetBits(1 << schedAlarm)
	}
}

func handleAlarm(interrupt.Interrupt) {
	rp.TIMER.INTF.ClearBits(1 << schedAlarm)
	rp.TIMER.INTR.Set(1 << schedAlarm)
	UpdateSystemTime()
	if alarmSched != nil {
		alarmSched.Dispatch(core.GetTime())
	}
}
