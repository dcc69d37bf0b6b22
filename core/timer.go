package core

import "sync/atomic"

// TimerFreq is the system tick rate: one tick per microsecond, matching the
// free-running 1 MHz counter on the supported MCUs.
const TimerFreq = 1000000

// systemTicks is written by the target (or simulator) and read from both
// interrupt and foreground context.
var systemTicks atomic.Uint32

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return systemTicks.Load()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	systemTicks.Store(ticks)
}

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerFromMS converts milliseconds to timer ticks
func TimerFromMS(ms uint32) uint32 {
	return TimerFromUS(ms * 1000)
}

// timerBefore reports whether a is strictly earlier than b, tolerating
// wraparound of the 32-bit tick counter (about 71 minutes at 1 MHz).
func timerBefore(a, b uint32) bool {
	return int32(a-b) < 0
}
