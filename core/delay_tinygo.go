//go:build tinygo

package core

import "device"

// Cycles one iteration of the nop loop takes on a Cortex-M0+ (nop, subs, bne)
const cyclesPerLoop = 4

// CycleDelay spins a nop loop sized from the CPU clock. It keeps working
// with interrupts masked, where the tick counter may be stale.
type CycleDelay struct {
	loopsPerUS uint64
	k, m       uint64
}

// NewCycleDelay sizes the loop for a CPU running at cpuHz
func NewCycleDelay(cpuHz uint32) *CycleDelay {
	loops := uint64(cpuHz) / 1000000 / cyclesPerLoop
	if loops == 0 {
		loops = 1
	}
	return &CycleDelay{loopsPerUS: loops, k: 1, m: 1}
}

//go:inline
func (d *CycleDelay) DelayMicros(us uint32) {
	for n := uint64(us) * d.loopsPerUS * d.k / d.m; n > 0; n-- {
		device.Asm(`nop`)
	}
}

func (d *CycleDelay) DelayMillis(ms uint32) {
	for ; ms > 0; ms-- {
		d.DelayMicros(1000)
	}
}

// CalibrateCycleDelay times n delays of us microseconds against a 1 MHz
// counter and corrects the loop ratio.
func CalibrateCycleDelay(d *CycleDelay, now func() uint32, us uint32, n int) {
	if n <= 0 || us == 0 {
		return
	}
	start := now()
	for i := 0; i < n; i++ {
		d.DelayMicros(us)
	}
	actual := uint64(now()-start) / uint64(n)
	d.k, d.m = scaleRatio(d.k, d.m, uint64(us), actual)
}
