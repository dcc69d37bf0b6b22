// Package sim runs the firmware core against simulated peripherals on a
// virtual microsecond clock.
//
// The board owns the core clock: peripherals queue events on it and
// advancing the board fires them in time order, interleaved with the
// firmware's scheduler timers. Everything runs on the calling goroutine.
package sim

import (
	"sort"

	"potlcd/core"
)

type event struct {
	at  uint32
	seq uint64
	fn  func()
}

// Board is a virtual-time event loop
type Board struct {
	now    uint32
	seq    uint64
	events []event
	sched  *core.Scheduler
	fired  uint64
}

// NewBoard resets the core clock to zero and returns an idle board
func NewBoard() *Board {
	core.SetTime(0)
	return &Board{}
}

// Now returns the virtual time in microseconds
func (b *Board) Now() uint32 {
	return b.now
}

// AttachScheduler makes the board dispatch s whenever time moves past one
// of its wake times, the way the hardware alarm interrupt would.
func (b *Board) AttachScheduler(s *core.Scheduler) {
	b.sched = s
}

// At queues fn to run at an absolute time. Events at the same time run in
// the order they were queued.
func (b *Board) At(at uint32, fn func()) {
	b.seq++
	e := event{at: at, seq: b.seq, fn: fn}
	i := sort.Search(len(b.events), func(i int) bool {
		return before(at, b.events[i].at)
	})
	b.events = append(b.events, event{})
	copy(b.events[i+1:], b.events[i:])
	b.events[i] = e
}

// After queues fn to run us microseconds from now
func (b *Board) After(us uint32, fn func()) {
	b.At(b.now+us, fn)
}

// Pending returns the number of queued peripheral events
func (b *Board) Pending() int {
	return len(b.events)
}

// Fired returns how many peripheral events have run
func (b *Board) Fired() uint64 {
	return b.fired
}

// Advance moves time forward by us, running everything that falls due
func (b *Board) Advance(us uint32) {
	end := b.now + us
	for {
		t, ok := b.next()
		if !ok || before(end, t) {
			break
		}
		b.step(t)
	}
	b.setNow(end)
}

// AdvanceToNext moves time to the next event or timer, but not past limit.
// Returns false when nothing was due before limit.
func (b *Board) AdvanceToNext(limit uint32) bool {
	t, ok := b.next()
	if !ok || before(limit, t) {
		b.setNow(limit)
		return false
	}
	b.step(t)
	return true
}

// Before reports whether the board clock has not yet reached t
func (b *Board) Before(t uint32) bool {
	return before(b.now, t)
}

// Delay returns a core.Delayer whose waits advance the board, so
// interrupts keep arriving while the foreground spins.
func (b *Board) Delay() core.Delayer {
	return boardDelay{b}
}

// next returns the earliest pending event or timer wake time
func (b *Board) next() (uint32, bool) {
	t, ok := uint32(0), false
	if len(b.events) > 0 {
		t, ok = b.events[0].at, true
	}
	if b.sched != nil {
		if wake, pending := b.sched.NextWake(); pending && (!ok || before(wake, t)) {
			t, ok = wake, true
		}
	}
	if ok && before(t, b.now) {
		t = b.now
	}
	return t, ok
}

// step moves to t and runs every event due at t, then the scheduler
func (b *Board) step(t uint32) {
	b.setNow(t)
	for len(b.events) > 0 && !before(t, b.events[0].at) {
		e := b.events[0]
		b.events = b.events[1:]
		b.fired++
		e.fn()
	}
	if b.sched != nil {
		b.sched.Dispatch(t)
	}
}

func (b *Board) setNow(t uint32) {
	b.now = t
	core.SetTime(t)
}

func before(a, b uint32) bool {
	return int32(a-b) < 0
}

type boardDelay struct {
	b *Board
}

func (d boardDelay) DelayMicros(us uint32) {
	d.b.Advance(us)
}

func (d boardDelay) DelayMillis(ms uint32) {
	d.b.Advance(ms * 1000)
}
