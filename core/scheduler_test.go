package core

import "testing"

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	var order []int

	mk := func(id int, wake uint32) *Timer {
		return &Timer{WakeTime: wake, Handler: func(*Timer) uint8 {
			order = append(order, id)
			return SF_DONE
		}}
	}

	s.Schedule(mk(3, 300))
	s.Schedule(mk(1, 100))
	s.Schedule(mk(2, 200))
	s.Schedule(mk(4, 200)) // same wake as 2, runs after it

	if wake, ok := s.NextWake(); !ok || wake != 100 {
		t.Fatalf("NextWake = %d,%v; want 100,true", wake, ok)
	}

	if n := s.Dispatch(199); n != 1 {
		t.Errorf("Dispatch(199) fired %d timers, want 1", n)
	}
	if n := s.Dispatch(300); n != 3 {
		t.Errorf("Dispatch(300) fired %d timers, want 3", n)
	}

	want := []int{1, 2, 4, 3}
	if len(order) != len(want) {
		t.Fatalf("fired %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("fired %v, want %v", order, want)
			break
		}
	}

	if _, ok := s.NextWake(); ok {
		t.Error("expected empty scheduler")
	}
}

func TestSchedulerReschedule(t *testing.T) {
	s := NewScheduler()
	count := 0
	tm := &Timer{WakeTime: 10}
	tm.Handler = func(t *Timer) uint8 {
		count++
		if count == 3 {
			return SF_DONE
		}
		t.WakeTime += 10
		return SF_RESCHEDULE
	}
	s.Schedule(tm)

	// A single dispatch far in the future runs every catch-up expiry
	s.Dispatch(1000)
	if count != 3 {
		t.Errorf("handler ran %d times, want 3", count)
	}
	if s.Pending(tm) {
		t.Error("timer should not be pending after SF_DONE")
	}
}

func TestSchedulerWraparound(t *testing.T) {
	s := NewScheduler()
	fired := false
	tm := &Timer{WakeTime: 0x10, Handler: func(*Timer) uint8 {
		fired = true
		return SF_DONE
	}}
	s.Schedule(tm)

	// 0xFFFFFFF8 is 24 ticks before the wrapped wake time 0x10
	s.Dispatch(0xFFFFFFF8)
	if fired {
		t.Fatal("timer fired before its wrapped wake time")
	}
	s.Dispatch(0x10)
	if !fired {
		t.Fatal("timer did not fire after wraparound")
	}
}

func TestSchedulerCancelAndMove(t *testing.T) {
	s := NewScheduler()
	fired := 0
	tm := &Timer{WakeTime: 50, Handler: func(*Timer) uint8 {
		fired++
		return SF_DONE
	}}

	if s.Cancel(tm) {
		t.Error("Cancel of an unqueued timer reported true")
	}

	s.Schedule(tm)
	tm.WakeTime = 80
	s.Schedule(tm) // moved, not duplicated

	s.Dispatch(60)
	if fired != 0 {
		t.Fatalf("timer fired at its old wake time")
	}
	s.Dispatch(80)
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}

	tm.WakeTime = 100
	s.Schedule(tm)
	if !s.Cancel(tm) {
		t.Error("Cancel of a queued timer reported false")
	}
	s.Dispatch(200)
	if fired != 1 {
		t.Errorf("cancelled timer fired")
	}
}

func TestSchedulerAlarmHook(t *testing.T) {
	s := NewScheduler()
	var alarms []uint32
	s.SetAlarm(func(wake uint32) { alarms = append(alarms, wake) })

	a := &Timer{WakeTime: 500, Handler: func(*Timer) uint8 { return SF_DONE }}
	b := &Timer{WakeTime: 200, Handler: func(*Timer) uint8 { return SF_DONE }}
	s.Schedule(a)
	s.Schedule(b)
	s.Dispatch(200)

	want := []uint32{500, 200, 500}
	if len(alarms) != len(want) {
		t.Fatalf("alarms %v, want %v", alarms, want)
	}
	for i := range want {
		if alarms[i] != want[i] {
			t.Errorf("alarms %v, want %v", alarms, want)
			break
		}
	}
}

func TestSchedulerHandlersRunMasked(t *testing.T) {
	s := NewScheduler()
	masked := false
	s.Schedule(&Timer{WakeTime: 1, Handler: func(*Timer) uint8 {
		masked = inCritical()
		return SF_DONE
	}})
	s.Dispatch(1)

	if !masked {
		t.Error("handler ran outside the critical section")
	}
	if inCritical() {
		t.Error("critical section left open after Dispatch")
	}
}
