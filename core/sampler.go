// Dual-channel analog sampling
// The completion interrupt is the only writer of the latest reading
package core

import (
	"fmt"
	"sync/atomic"
)

// AnalogSampler runs a two-channel conversion sequence and latches the
// result of whichever channel the current selection asks for.
type AnalogSampler struct {
	state    *State
	channels [2]ADCChannelID // indexed by Sensor

	latches       atomic.Uint32
	retriggers    atomic.Uint32
	triggerErrors atomic.Uint32
}

// NewAnalogSampler creates a sampler for the potentiometer and
// photoresistor channels
func NewAnalogSampler(state *State, pot, photo ADCChannelID) *AnalogSampler {
	a := &AnalogSampler{state: state}
	a.channels[SensorPotentiometer] = pot
	a.channels[SensorPhotoresistor] = photo
	return a
}

// Channel returns the conversion channel wired to a sensor
func (a *AnalogSampler) Channel(s Sensor) ADCChannelID {
	return a.channels[s]
}

// Configure programs the sequence photoresistor then potentiometer,
// installs the completion handler and starts the first conversion.
func (a *AnalogSampler) Configure() error {
	photo, pot := a.channels[SensorPhotoresistor], a.channels[SensorPotentiometer]
	if photo == pot {
		return fmt.Errorf("sensor channels must differ, both are %d", pot)
	}
	if StatusFor(photo) == 0 || StatusFor(pot) == 0 {
		return ErrUnknownChannel
	}

	adc := MustADC()
	if err := adc.ConfigureSequence([]ADCChannelID{photo, pot}); err != nil {
		return fmt.Errorf("configure ADC sequence: %w", err)
	}
	adc.SetHandler(a.HandleInterrupt)
	return adc.Trigger()
}

// Trigger advances the sequencer by one conversion
func (a *AnalogSampler) Trigger() error {
	return MustADC().Trigger()
}

// HandleInterrupt is the ADC completion interrupt handler.
//
// Every pending flag is acknowledged up front. A completed channel that
// matches the selection is latched; one that does not is retriggered at
// once so the sequencer moves on to the channel that matters.
func (a *AnalogSampler) HandleInterrupt() {
	adc := MustADC()
	status := adc.Status()
	adc.ClearStatus(status)

	for _, sensor := range [2]Sensor{SensorPhotoresistor, SensorPotentiometer} {
		ch := a.channels[sensor]
		if !status.Has(ch) {
			continue
		}
		if a.state.Selection() == sensor {
			value := adc.Result(ch)
			a.state.latch(value)
			a.latches.Add(1)
			RecordEvent(EvtLatch, uint32(ch), uint32(value))
		} else {
			a.retriggers.Add(1)
			RecordEvent(EvtRetrigger, uint32(ch), 0)
			if err := adc.Trigger(); err != nil {
				a.triggerErrors.Add(1)
				RecordEvent(EvtTriggerError, uint32(ch), 0)
			}
		}
	}
}

// Latches returns how many conversions were latched
func (a *AnalogSampler) Latches() uint32 {
	return a.latches.Load()
}

// Retriggers returns how many conversions were skipped and retriggered
func (a *AnalogSampler) Retriggers() uint32 {
	return a.retriggers.Load()
}

// TriggerErrors returns how many retriggers the converter refused
func (a *AnalogSampler) TriggerErrors() uint32 {
	return a.triggerErrors.Load()
}
