package core

import "sync/atomic"

// RefreshMode selects how the refresh timer rearms
type RefreshMode uint8

const (
	// RefreshPeriodic reschedules itself every period
	RefreshPeriodic RefreshMode = iota
	// RefreshOneShot fires once and is rearmed by the foreground loop after
	// each render, so the cadence is period plus render time
	RefreshOneShot
)

// RefreshTimer raises RefreshDue at a fixed cadence
type RefreshTimer struct {
	Period uint32 // ticks
	Mode   RefreshMode

	state *State
	sched *Scheduler
	timer Timer

	expiries  atomic.Uint32
	coalesced atomic.Uint32
}

// NewRefreshTimer creates a refresh timer with a period in ticks
func NewRefreshTimer(period uint32, mode RefreshMode, state *State, sched *Scheduler) *RefreshTimer {
	r := &RefreshTimer{
		Period: period,
		Mode:   mode,
		state:  state,
		sched:  sched,
	}
	r.timer.Handler = r.expire
	return r
}

// Start arms the first expiry one period from now
func (r *RefreshTimer) Start() {
	r.timer.WakeTime = GetTime() + r.Period
	r.sched.Schedule(&r.timer)
}

// Rearm restarts a one-shot timer; periodic timers ignore it
func (r *RefreshTimer) Rearm() {
	if r.Mode != RefreshOneShot || r.sched.Pending(&r.timer) {
		return
	}
	r.Start()
}

// Stop cancels any pending expiry
func (r *RefreshTimer) Stop() {
	r.sched.Cancel(&r.timer)
}

// expire only marks the refresh as due; drawing happens in the foreground
func (r *RefreshTimer) expire(t *Timer) uint8 {
	r.expiries.Add(1)
	if r.state.markRefreshDue() {
		RecordEvent(EvtRefreshDue, 1, 0)
	} else {
		r.coalesced.Add(1)
		RecordEvent(EvtRefreshDue, 0, 0)
	}

	if r.Mode == RefreshOneShot {
		return SF_DONE
	}
	// One period after the scheduled time, not after now
	t.WakeTime += r.Period
	return SF_RESCHEDULE
}

// Expiries returns the number of timer expiries
func (r *RefreshTimer) Expiries() uint32 {
	return r.expiries.Load()
}

// Coalesced returns expiries that found a refresh already pending
func (r *RefreshTimer) Coalesced() uint32 {
	return r.coalesced.Load()
}
