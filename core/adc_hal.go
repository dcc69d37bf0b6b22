package core

import "errors"

// ADCChannelID identifies a logical ADC input channel.
type ADCChannelID uint8

// ADCValue is the raw conversion code as seen by the rest of the firmware.
// Convention here: 14-bit code (0..16383), whatever the hardware resolution.
// Targets with narrower converters shift their result up.
type ADCValue uint16

// ADCStatus is the completion interrupt status, one bit per channel ID.
type ADCStatus uint32

// StatusFor returns the status bit belonging to a channel.
func StatusFor(ch ADCChannelID) ADCStatus {
	return 1 << ch
}

// Has reports whether the channel's completion bit is set.
func (s ADCStatus) Has(ch ADCChannelID) bool {
	return s&StatusFor(ch) != 0
}

var (
	ErrUnknownChannel = errors.New("unknown ADC channel")
	ErrEmptySequence  = errors.New("empty ADC sequence")
)

// ADCDriver is the abstract ADC interface that core code uses.
//
// The converter runs in sequence (round-robin) mode with manual iteration:
// each Trigger converts the next channel of the sequence and raises the
// completion interrupt for that channel alone.
type ADCDriver interface {
	// ConfigureSequence powers up the converter and programs the channels
	// it cycles through, in order.
	ConfigureSequence(channels []ADCChannelID) error

	// SetHandler registers the completion interrupt handler and enables
	// per-channel completion interrupts.
	SetHandler(handler func())

	// Trigger starts the next conversion of the sequence.
	Trigger() error

	// Status returns the enabled completion bits currently pending.
	Status() ADCStatus

	// ClearStatus acknowledges the given completion bits.
	ClearStatus(status ADCStatus)

	// Result returns the last conversion code for a channel.
	Result(ch ADCChannelID) ADCValue
}

// Global singleton used by core code.
var adcDriver ADCDriver

// SetADCDriver is called by target-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}
