//go:build !tinygo

package core

import "sync/atomic"

// irqState is the saved interrupt state on regular Go: the critical
// section nesting depth before the matching disableInterrupts call.
type irqState uint32

// criticalDepth counts nested critical sections. The simulator runs on a
// single goroutine, so masking is bookkeeping only.
var criticalDepth atomic.Uint32

// disableInterrupts enters a critical section
func disableInterrupts() irqState {
	return irqState(criticalDepth.Add(1) - 1)
}

// restoreInterrupts leaves the critical section entered by disableInterrupts
func restoreInterrupts(state irqState) {
	criticalDepth.Store(uint32(state))
}

// inCritical reports whether a critical section is active (tests only)
func inCritical() bool {
	return criticalDepth.Load() > 0
}
