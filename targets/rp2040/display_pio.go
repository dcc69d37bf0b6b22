//go:build rp2040 && lcdpio

package main

import (
	"device/rp"
	"errors"
	"machine"
	"runtime/volatile"
	"unsafe"

	pio "github.com/tinygo-org/pio/rp2-pio"
	"github.com/tinygo-org/pio/rp2-pio/piolib"

	"potlcd/config"
	"potlcd/core"
)

// PIO clocks bytes out at 1 MHz; the E high phase is 500 ns, above the
// 450 ns the controller needs.
const lcdBaud = 1000000

var errNoStateMachine = errors.New("no free PIO state machine")

// pioBus puts DB0..7 and E on a PIO parallel transmitter. The program
// strobes its WR pin low per byte, so E is inverted in the pad mux.
type pioBus struct {
	rs  machine.Pin
	en  machine.Pin
	db0 machine.Pin
	tx  *piolib.Parallel8Tx
	buf [1]byte
}

// newDisplay drives the panel through PIO0
func newDisplay(cols, rows uint8) core.Display {
	bus := &pioBus{
		rs:  machine.Pin(config.LCDRS),
		en:  machine.Pin(config.LCDEn),
		db0: machine.Pin(config.LCDData[0]),
	}
	return core.NewLCD(bus, core.NewTickDelay(GetHardwareTime), cols, rows)
}

func (b *pioBus) Configure() error {
	for i := 1; i < len(config.LCDData); i++ {
		if config.LCDData[i] != config.LCDData[0]+core.GPIOPin(i) {
			return errors.New("PIO bus needs consecutive data pins")
		}
	}
	b.rs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b.rs.Low()

	sm, err := pio.PIO0.ClaimStateMachine()
	if err != nil {
		return errNoStateMachine
	}
	tx, err := piolib.NewParallel8Tx(sm, b.en, b.db0, lcdBaud)
	if err != nil {
		return err
	}
	b.tx = tx
	invertOutput(b.en)
	return nil
}

func (b *pioBus) Write(mode core.LCDMode, v byte) error {
	b.rs.Set(mode == core.LCDData)
	b.buf[0] = v
	b.tx.Write(b.buf[:])
	return nil
}

// invertOutput sets OUTOVER=INVERT in the pin's IO_BANK0 control register
func invertOutput(pin machine.Pin) {
	// GPIOn_CTRL sits 8 bytes after GPIO(n-1)_CTRL
	base := uintptr(unsafe.Pointer(&rp.IO_BANK0.GPIO0_CTRL))
	ctrl := (*volatile.Register32)(unsafe.Pointer(base + uintptr(pin)*8))
	ctrl.ReplaceBits(rp.IO_BANK0_GPIO0_CTRL_OUTOVER_INVERT<<rp.IO_BANK0_GPIO0_CTRL_OUTOVER_Pos,
		rp.IO_BANK0_GPIO0_CTRL_OUTOVER_Msk, 0)
}
