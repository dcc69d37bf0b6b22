//go:build rp2040

package main

import (
	"device/rp"
	"machine"
	"runtime/interrupt"

	"potlcd/core"
)

// RP2040 has four external inputs (GPIO26..29) and the temperature sensor
const numADCInputs = 5

var adcInputPins = [numADCInputs - 1]machine.Pin{machine.ADC0, machine.ADC1, machine.ADC2, machine.ADC3}

// RpAdcDriver implements core.ADCDriver on the RP2040 SAR converter.
// Each Trigger selects the next sequence entry and starts one conversion;
// the FIFO interrupt latches the result.
type RpAdcDriver struct {
	sequence []core.ADCChannelID
	next     int
	current  core.ADCChannelID

	handler func()
	status  core.ADCStatus
	results [numADCInputs]core.ADCValue
}

var adcInstance *RpAdcDriver

// NewRPAdcDriver constructs the driver; ConfigureSequence powers it up
func NewRPAdcDriver() *RpAdcDriver {
	return &RpAdcDriver{}
}

// ConfigureSequence enables the converter and the channels it cycles through
func (d *RpAdcDriver) ConfigureSequence(channels []core.ADCChannelID) error {
	if len(channels) == 0 {
		return core.ErrEmptySequence
	}
	for _, ch := range channels {
		if int(ch) >= numADCInputs {
			return core.ErrUnknownChannel
		}
	}

	machine.InitADC()
	for _, ch := range channels {
		if int(ch) < len(adcInputPins) {
			in := machine.ADC{Pin: adcInputPins[ch]}
			in.Configure(machine.ADCConfig{})
		} else {
			rp.ADC.CS.SetBits(rp.ADC_CS_TS_EN)
		}
	}

	d.sequence = append(d.sequence[:0], channels...)
	d.next = 0

	// One result per conversion, no DMA, no error bit in the sample
	rp.ADC.FCS.Set(rp.ADC_FCS_EN | 1<<rp.ADC_FCS_THRESH_Pos)
	return nil
}

// SetHandler installs the completion handler and enables the FIFO interrupt
func (d *RpAdcDriver) SetHandler(handler func()) {
	d.handler = handler
	adcInstance = d
	rp.ADC.INTE.Set(rp.ADC_INTE_FIFO)
	intr := interrupt.New(rp.IRQ_ADC_IRQ_FIFO, handleADC)
	intr.Enable()
}

// Trigger converts the next channel of the sequence. A trigger while a
// conversion is in flight is dropped.
func (d *RpAdcDriver) Trigger() error {
	if len(d.sequence) == 0 {
		return core.ErrEmptySequence
	}
	if !rp.ADC.CS.HasBits(rp.ADC_CS_READY) {
		return nil
	}
	d.current = d.sequence[d.next]
	d.next = (d.next + 1) % len(d.sequence)

	rp.ADC.CS.ReplaceBits(uint32(d.current)<<rp.ADC_CS_AINSEL_Pos, rp.ADC_CS_AINSEL_Msk, 0)
	rp.ADC.CS.SetBits(rp.ADC_CS_START_ONCE)
	return nil
}

// Status returns the pending completion bits
func (d *RpAdcDriver) Status() core.ADCStatus {
	state := interrupt.Disable()
	defer interrupt.Restore(state)
	return d.status
}

// ClearStatus acknowledges completion bits
func (d *RpAdcDriver) ClearStatus(status core.ADCStatus) {
	state := interrupt.Disable()
	d.status &^= status
	interrupt.Restore(state)
}

// Result returns the last code for ch, scaled from 12 to 14 bits
func (d *RpAdcDriver) Result(ch core.ADCChannelID) core.ADCValue {
	if int(ch) >= numADCInputs {
		return 0
	}
	return d.results[ch]
}

func handleADC(interrupt.Interrupt) {
	d := adcInstance
	if d == nil {
		return
	}
	UpdateSystemTime()
	for rp.ADC.FCS.Get()&rp.ADC_FCS_LEVEL_Msk != 0 {
		raw := rp.ADC.FIFO.Get() & 0xFFF
		d.results[d.current] = core.ADCValue(raw << 2)
	}
	d.status |= core.StatusFor(d.current)
	if d.handler != nil {
		d.handler()
	}
}
