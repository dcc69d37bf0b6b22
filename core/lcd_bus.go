package core

// LCDMode is the level of the register select line
type LCDMode uint8

const (
	LCDCommand LCDMode = iota // RS low: instruction register
	LCDData                   // RS high: data register
)

// LCDBus is one strobe on an 8-bit HD44780 parallel bus. Write presents
// the mode and byte, pulses E and returns once E is low again. It does not
// wait for the controller to finish executing; LCD adds that settle time.
type LCDBus interface {
	Configure() error
	Write(mode LCDMode, b byte) error
}

// enablePulseUS is the E high time; the controller needs at least 450 ns
const enablePulseUS = 1

// GPIOBus bit-bangs the bus through the GPIO HAL
type GPIOBus struct {
	rs, en GPIOPin
	data   [8]GPIOPin // DB0..DB7
	delay  Delayer
}

// NewGPIOBus returns a bus on the given register select, enable and data pins
func NewGPIOBus(rs, en GPIOPin, data [8]GPIOPin, delay Delayer) *GPIOBus {
	return &GPIOBus{rs: rs, en: en, data: data, delay: delay}
}

// Configure makes E an output and drives it low before anything else
// becomes an output, so no spurious strobe reaches the controller.
func (b *GPIOBus) Configure() error {
	gpio := MustGPIO()
	if err := gpio.ConfigureOutput(b.en); err != nil {
		return err
	}
	if err := gpio.SetPin(b.en, false); err != nil {
		return err
	}
	if err := gpio.ConfigureOutput(b.rs); err != nil {
		return err
	}
	for _, pin := range b.data {
		if err := gpio.ConfigureOutput(pin); err != nil {
			return err
		}
	}
	return nil
}

func (b *GPIOBus) Write(mode LCDMode, v byte) error {
	gpio := MustGPIO()

	if err := b.setData(0); err != nil {
		return err
	}
	if err := gpio.SetPin(b.rs, mode == LCDData); err != nil {
		return err
	}
	if err := gpio.SetPin(b.en, true); err != nil {
		return err
	}
	if err := b.setData(v); err != nil {
		return err
	}
	b.delay.DelayMicros(enablePulseUS)
	// Controller latches on the falling edge
	return gpio.SetPin(b.en, false)
}

func (b *GPIOBus) setData(v byte) error {
	gpio := MustGPIO()
	for i, pin := range b.data {
		if err := gpio.SetPin(pin, v&(1<<i) != 0); err != nil {
			return err
		}
	}
	return nil
}
