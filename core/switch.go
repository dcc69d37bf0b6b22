// Pushbutton input with timer debounce
// The first edge opens a debounce window; edges inside it are ignored
package core

import "sync/atomic"

// Switch toggles the sensor selection on debounced edges.
//
// It is a two-state machine:
//
//	Idle    gate open; an edge toggles the selection, closes the gate and
//	        arms the debounce timer -> Cooling
//	Cooling gate closed; edges are ignored; expiry reopens the gate -> Idle
type Switch struct {
	Pin    GPIOPin
	Edge   PinEdge
	Window uint32 // debounce window in ticks

	state *State
	sched *Scheduler
	timer Timer

	toggles atomic.Uint32
	ignored atomic.Uint32
}

// NewSwitch creates a switch on pin with a debounce window in ticks
func NewSwitch(pin GPIOPin, edge PinEdge, window uint32, state *State, sched *Scheduler) *Switch {
	sw := &Switch{
		Pin:    pin,
		Edge:   edge,
		Window: window,
		state:  state,
		sched:  sched,
	}
	sw.timer.Handler = sw.debounceExpired
	return sw
}

// Configure sets the pin as a pulled-up input and arms its edge interrupt
func (sw *Switch) Configure() error {
	gpio := MustGPIO()
	if err := gpio.ConfigureInputPullUp(sw.Pin); err != nil {
		return err
	}
	return gpio.SetInterrupt(sw.Pin, sw.Edge, sw.HandleEdge)
}

// HandleEdge is the pin interrupt handler
func (sw *Switch) HandleEdge(pin GPIOPin) {
	if pin != sw.Pin {
		return
	}

	if !sw.state.closeGate() {
		sw.ignored.Add(1)
		RecordEvent(EvtEdgeIgnored, uint32(pin), 0)
		return
	}

	next := sw.state.toggleSelection()
	sw.toggles.Add(1)
	RecordEvent(EvtToggle, uint32(next), 0)

	sw.timer.WakeTime = GetTime() + sw.Window
	sw.sched.Schedule(&sw.timer)
}

// debounceExpired reopens the gate. One-shot: never reschedules itself.
func (sw *Switch) debounceExpired(t *Timer) uint8 {
	sw.state.openGate()
	RecordEvent(EvtGateOpen, 0, 0)
	return SF_DONE
}

// Cooling reports whether a debounce window is running
func (sw *Switch) Cooling() bool {
	return !sw.state.GateOpen()
}

// Toggles returns how many edges were accepted
func (sw *Switch) Toggles() uint32 {
	return sw.toggles.Load()
}

// Ignored returns how many edges fell inside a debounce window
func (sw *Switch) Ignored() uint32 {
	return sw.ignored.Load()
}
