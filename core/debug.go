package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures an interrupt-side occurrence for later printing
type Event struct {
	Type   uint8  // Event type code
	Clock  uint32 // System clock at event
	Value1 uint32 // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// Event type codes
const (
	EvtToggle       = 1 // switch edge accepted; v1=new selection
	EvtEdgeIgnored  = 2 // switch edge inside debounce window; v1=pin
	EvtGateOpen     = 3 // debounce window elapsed
	EvtLatch        = 4 // conversion latched; v1=channel v2=value
	EvtRetrigger    = 5 // conversion skipped and retriggered; v1=channel
	EvtRefreshDue   = 6 // refresh expiry; v1=1 on transition, 0 when coalesced
	EvtRender       = 7 // render complete; v1=selection v2=reading
	EvtDisplayError = 8 // display write failed during render
	EvtTriggerError = 9 // retrigger from the completion handler failed; v1=channel
)

const (
	EventRingSize = 32 // Keep last 32 events
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Event ring buffer, written from interrupt handlers
	eventRing    [EventRingSize]Event
	eventCount   uint32 // Total events recorded; next slot is eventCount % size
	eventFlushed uint32 // eventCount value at the last FlushEvents

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go debugOutputWorker()
}

func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer.
// When the async worker is running the message is queued instead and
// dropped if the queue is full, so a stalled console never stalls the loop.
func DebugPrintln(msg string) {
	if !debugEnabled || debugPrintln == nil {
		return
	}
	if debugChan != nil {
		select {
		case debugChan <- msg:
		default:
		}
		return
	}
	debugPrintln(msg)
}

// RecordEvent stores an event in the ring. Safe from interrupt context:
// it neither allocates nor blocks.
func RecordEvent(eventType uint8, value1, value2 uint32) {
	state := disableInterrupts()
	eventRing[eventCount%EventRingSize] = Event{
		Type:   eventType,
		Clock:  GetTime(),
		Value1: value1,
		Value2: value2,
	}
	eventCount++
	restoreInterrupts(state)
}

// EventName returns the console name of an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtToggle:
		return "TOGGLE"
	case EvtEdgeIgnored:
		return "EDGE_IGNORED"
	case EvtGateOpen:
		return "GATE_OPEN"
	case EvtLatch:
		return "LATCH"
	case EvtRetrigger:
		return "RETRIGGER"
	case EvtRefreshDue:
		return "REFRESH_DUE"
	case EvtRender:
		return "RENDER"
	case EvtDisplayError:
		return "DISPLAY_ERROR"
	case EvtTriggerError:
		return "TRIGGER_ERROR"
	default:
		return "UNKNOWN"
	}
}

func formatEvent(evt *Event) string {
	return "[EVT] " + EventName(evt.Type) +
		" clock=" + utoa(evt.Clock) +
		" v1=" + utoa(evt.Value1) +
		" v2=" + utoa(evt.Value2)
}

// snapshotEvents copies events recorded since `from`, oldest first.
// If more than a ring's worth arrived, the overwritten ones are skipped.
func snapshotEvents(from uint32, buf []Event) ([]Event, uint32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	end := eventCount
	if end-from > EventRingSize {
		from = end - EventRingSize
	}
	buf = buf[:0]
	for i := from; i != end; i++ {
		buf = append(buf, eventRing[i%EventRingSize])
	}
	return buf, end
}

// FlushEvents prints events recorded since the previous flush.
// Call from the foreground loop only.
func FlushEvents() int {
	var scratch [EventRingSize]Event
	events, end := snapshotEvents(eventFlushed, scratch[:0])
	eventFlushed = end
	if !debugEnabled {
		return 0
	}
	for i := range events {
		DebugPrintln(formatEvent(&events[i]))
	}
	return len(events)
}

// DumpEventRing prints the whole ring buffer regardless of flush position
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	var scratch [EventRingSize]Event
	start := uint32(0)
	if eventCount > EventRingSize {
		start = eventCount - EventRingSize
	}
	events, _ := snapshotEvents(start, scratch[:0])

	debugPrintln("[EVT] === Event Ring Dump ===")
	for i := range events {
		debugPrintln(formatEvent(&events[i]))
	}
	debugPrintln("[EVT] === End Dump ===")
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	state := disableInterrupts()
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventCount = 0
	eventFlushed = 0
	restoreInterrupts(state)
}

// EventCount returns how many events have been recorded since the last clear
func EventCount() uint32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return eventCount
}
