package core

// Timer represents a scheduled event
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer

	queued bool
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler keeps timers sorted by wake time and runs the due ones.
// On the MCU Dispatch is called from the hardware alarm interrupt, so the
// list is only ever touched with interrupts masked.
type Scheduler struct {
	head  *Timer
	alarm func(wake uint32)
}

// NewScheduler returns an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// SetAlarm registers the hook a target uses to program its hardware alarm.
// It is called whenever the earliest wake time changes.
func (s *Scheduler) SetAlarm(alarm func(wake uint32)) {
	s.alarm = alarm
}

// Schedule adds a timer. A timer that is already queued is moved to its new
// wake time instead of being linked twice.
func (s *Scheduler) Schedule(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if t.queued {
		s.unlink(t)
	}
	s.insert(t)
	s.kick()
}

// Cancel removes a timer if it is queued. Returns whether it was.
func (s *Scheduler) Cancel(t *Timer) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if !t.queued {
		return false
	}
	s.unlink(t)
	s.kick()
	return true
}

// Pending reports whether a timer is queued
func (s *Scheduler) Pending(t *Timer) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return t.queued
}

// NextWake returns the earliest wake time, if any timer is queued
func (s *Scheduler) NextWake() (uint32, bool) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.head == nil {
		return 0, false
	}
	return s.head.WakeTime, true
}

// Dispatch runs every timer whose WakeTime is not after now, in wake order.
// Handlers run with interrupts masked and must not block.
func (s *Scheduler) Dispatch(now uint32) int {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	fired := 0
	for s.head != nil && !timerBefore(now, s.head.WakeTime) {
		t := s.head
		s.head = t.Next
		t.Next = nil
		t.queued = false
		fired++

		if t.Handler(t) == SF_RESCHEDULE {
			s.insert(t)
		}
	}
	s.kick()
	return fired
}

// ProcessTimers dispatches against the current system time
func (s *Scheduler) ProcessTimers() int {
	return s.Dispatch(GetTime())
}

// insert links t in sorted order by WakeTime; equal wake times keep FIFO order
func (s *Scheduler) insert(t *Timer) {
	t.queued = true
	if s.head == nil || timerBefore(t.WakeTime, s.head.WakeTime) {
		t.Next = s.head
		s.head = t
		return
	}

	current := s.head
	for current.Next != nil && !timerBefore(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

func (s *Scheduler) unlink(t *Timer) {
	if s.head == t {
		s.head = t.Next
	} else {
		for p := s.head; p != nil; p = p.Next {
			if p.Next == t {
				p.Next = t.Next
				break
			}
		}
	}
	t.Next = nil
	t.queued = false
}

func (s *Scheduler) kick() {
	if s.alarm != nil && s.head != nil {
		s.alarm(s.head.WakeTime)
	}
}
