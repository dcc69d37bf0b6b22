package core

// Delayer provides blocking busy-wait delays.
// Display timing depends on these never returning early.
type Delayer interface {
	DelayMicros(us uint32)
	DelayMillis(ms uint32)
}

// TickDelay busy-waits on a free-running counter ticking at TimerFreq
type TickDelay struct {
	now func() uint32
}

// NewTickDelay returns a delay that spins on now. A nil now uses GetTime,
// which only advances if something updates the system time while we spin
// (an interrupt on the MCU, or the simulator's clock).
func NewTickDelay(now func() uint32) *TickDelay {
	if now == nil {
		now = GetTime
	}
	return &TickDelay{now: now}
}

// DelayMicros spins until at least us microseconds have elapsed
func (d *TickDelay) DelayMicros(us uint32) {
	ticks := TimerFromUS(us)
	start := d.now()
	for d.now()-start < ticks {
	}
}

// DelayMillis spins for ms milliseconds, one millisecond at a time so a
// long wait cannot overflow the tick conversion
func (d *TickDelay) DelayMillis(ms uint32) {
	for ; ms > 0; ms-- {
		d.DelayMicros(1000)
	}
}

// gcd returns the greatest common divisor
func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// scaleRatio folds a measured/wanted correction into the ratio k/m so that
// loops*k/m lands on the wanted duration. Result is reduced.
func scaleRatio(k, m, wanted, actual uint64) (uint64, uint64) {
	if wanted == 0 || actual == 0 {
		return k, m
	}
	k *= wanted
	m *= actual
	g := gcd(k, m)
	return k / g, m / g
}
