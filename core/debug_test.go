package core

import (
	"strings"
	"testing"
)

func captureDebug() *[]string {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	SetDebugEnabled(true)
	return &lines
}

func TestFlushEvents(t *testing.T) {
	resetCore()
	lines := captureDebug()

	SetTime(1234)
	RecordEvent(EvtLatch, 15, 8192)
	if n := FlushEvents(); n != 1 {
		t.Fatalf("flushed %d events, want 1", n)
	}
	if (*lines)[0] != "[EVT] LATCH clock=1234 v1=15 v2=8192" {
		t.Errorf("line = %q", (*lines)[0])
	}

	// Nothing new since the last flush
	if n := FlushEvents(); n != 0 {
		t.Errorf("second flush printed %d events", n)
	}
}

func TestFlushEventsOverrun(t *testing.T) {
	resetCore()
	lines := captureDebug()

	for i := 0; i < EventRingSize+5; i++ {
		RecordEvent(EvtRetrigger, uint32(i), 0)
	}
	if n := FlushEvents(); n != EventRingSize {
		t.Fatalf("flushed %d events, want %d", n, EventRingSize)
	}
	// Oldest five were overwritten
	if !strings.Contains((*lines)[0], "v1=5 ") {
		t.Errorf("first flushed line = %q, want v1=5", (*lines)[0])
	}
	if EventCount() != EventRingSize+5 {
		t.Errorf("EventCount = %d", EventCount())
	}
}

func TestFlushEventsDisabled(t *testing.T) {
	resetCore()
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })

	RecordEvent(EvtToggle, 1, 0)
	FlushEvents()
	if len(lines) != 0 {
		t.Errorf("printed %v with debug disabled", lines)
	}

	// Disabled flushes still advance, so enabling later does not replay
	SetDebugEnabled(true)
	if n := FlushEvents(); n != 0 {
		t.Errorf("replayed %d events", n)
	}
}

func TestDumpEventRing(t *testing.T) {
	resetCore()
	lines := captureDebug()

	RecordEvent(EvtToggle, 1, 0)
	RecordEvent(EvtGateOpen, 0, 0)
	DumpEventRing()

	if len(*lines) != 4 {
		t.Fatalf("dump printed %d lines: %v", len(*lines), *lines)
	}
	if !strings.HasPrefix((*lines)[1], "[EVT] TOGGLE") || !strings.HasPrefix((*lines)[2], "[EVT] GATE_OPEN") {
		t.Errorf("dump = %v", *lines)
	}
}

func TestEventName(t *testing.T) {
	for typ := uint8(EvtToggle); typ <= EvtTriggerError; typ++ {
		if EventName(typ) == "UNKNOWN" {
			t.Errorf("event %d has no name", typ)
		}
	}
	if EventName(0) != "UNKNOWN" {
		t.Error("event 0 should be unknown")
	}
}
