package core

import "sync/atomic"

// Sensor selects which analog circuit is shown on the display
type Sensor uint8

const (
	SensorPotentiometer Sensor = iota
	SensorPhotoresistor
)

// Label is the text rendered in front of the reading
func (s Sensor) Label() string {
	if s == SensorPhotoresistor {
		return "Photo"
	}
	return "Pot"
}

func (s Sensor) String() string {
	if s == SensorPhotoresistor {
		return "photoresistor"
	}
	return "potentiometer"
}

// Other returns the sensor a toggle switches to
func (s Sensor) Other() Sensor {
	if s == SensorPhotoresistor {
		return SensorPotentiometer
	}
	return SensorPhotoresistor
}

// State holds the values shared between interrupt handlers and the
// foreground loop. Every cell has exactly one writer context:
//
//	selection   switch edge handler
//	reading     ADC completion handler
//	refreshDue  set by refresh expiry, cleared by the renderer
//	gateOpen    closed by switch edge handler, opened by debounce expiry
//
// Cells are independent atomics; no two are updated together.
type State struct {
	selection  atomic.Uint32
	reading    atomic.Uint32
	refreshDue atomic.Bool
	gateOpen   atomic.Bool
}

// NewState returns the power-on state: potentiometer selected, gate open.
func NewState() *State {
	s := &State{}
	s.selection.Store(uint32(SensorPotentiometer))
	s.gateOpen.Store(true)
	return s
}

// Selection returns the currently selected sensor
func (s *State) Selection() Sensor {
	return Sensor(s.selection.Load())
}

// toggleSelection flips the selection and returns the new value
func (s *State) toggleSelection() Sensor {
	next := s.Selection().Other()
	s.selection.Store(uint32(next))
	return next
}

// Reading returns the latest latched conversion code
func (s *State) Reading() ADCValue {
	return ADCValue(s.reading.Load())
}

func (s *State) latch(v ADCValue) {
	s.reading.Store(uint32(v))
}

// RefreshDue reports whether a redraw is pending
func (s *State) RefreshDue() bool {
	return s.refreshDue.Load()
}

// markRefreshDue sets the flag and reports whether it was a false->true
// transition. Repeated marks before a render are coalesced.
func (s *State) markRefreshDue() bool {
	return s.refreshDue.CompareAndSwap(false, true)
}

func (s *State) clearRefreshDue() {
	s.refreshDue.Store(false)
}

// GateOpen reports whether the next switch edge will be accepted
func (s *State) GateOpen() bool {
	return s.gateOpen.Load()
}

// closeGate closes the gate if open; only the caller that closes it may toggle
func (s *State) closeGate() bool {
	return s.gateOpen.CompareAndSwap(true, false)
}

func (s *State) openGate() {
	s.gateOpen.Store(true)
}
