package sim

import (
	"strings"

	"potlcd/core"
)

// Controller execution times from the HD44780 datasheet at 270 kHz
const (
	hdPowerOnUS   = 40000
	hdExecLongUS  = 1520 // clear display, return home
	hdExecShortUS = 37
	hdEnableMinUS = 1 // PWeh is 450 ns; anything under one tick is too short
)

const (
	hdLineLen   = 0x28
	hdLine2Addr = 0x40
)

// Violation is a strobe the controller could not accept
type Violation struct {
	At        uint32
	BusyUntil uint32
	Mode      core.LCDMode
	Code      byte
}

// HD44780 decodes an 8-bit parallel bus from the simulated GPIO pins.
// Each falling edge of E latches RS and DB0-7 and executes the
// instruction. A strobe that arrives while the previous instruction is
// still executing is recorded as a violation and then executed anyway.
type HD44780 struct {
	Cols, Rows uint8

	board  *Board
	gpio   *GPIO
	rs, en core.GPIOPin
	data   [8]core.GPIOPin

	ddram     [0x80]byte
	addr      byte
	increment bool
	displayOn bool
	eightBit  bool
	twoLine   bool

	busyUntil uint32
	enRise    uint32

	strobes     uint32
	shortPulses uint32
	violations  []Violation
}

// NewHD44780 attaches a controller to the bus pins. Power is applied now.
func NewHD44780(board *Board, gpio *GPIO, rs, en core.GPIOPin, data [8]core.GPIOPin, cols, rows uint8) *HD44780 {
	lcd := &HD44780{
		Cols:      cols,
		Rows:      rows,
		board:     board,
		gpio:      gpio,
		rs:        rs,
		en:        en,
		data:      data,
		increment: true,
		busyUntil: board.Now() + hdPowerOnUS,
	}
	for i := range lcd.ddram {
		lcd.ddram[i] = ' '
	}
	gpio.Watch(lcd.onPin)
	return lcd
}

func (l *HD44780) onPin(pin core.GPIOPin, level bool) {
	if pin != l.en {
		return
	}
	now := l.board.Now()
	if level {
		l.enRise = now
		return
	}

	l.strobes++
	if now-l.enRise < hdEnableMinUS {
		l.shortPulses++
	}

	mode := core.LCDCommand
	if l.gpio.Level(l.rs) {
		mode = core.LCDData
	}
	var b byte
	for i, p := range l.data {
		if l.gpio.Level(p) {
			b |= 1 << i
		}
	}

	if before(now, l.busyUntil) {
		l.violations = append(l.violations, Violation{At: now, BusyUntil: l.busyUntil, Mode: mode, Code: b})
	}
	l.busyUntil = now + l.execute(mode, b)
}

// execute runs one instruction and returns its execution time
func (l *HD44780) execute(mode core.LCDMode, b byte) uint32 {
	if mode == core.LCDData {
		l.ddram[l.addr] = b
		l.advance()
		return hdExecShortUS
	}

	switch {
	case b&0x80 != 0:
		l.addr = b & 0x7F
	case b&0x40 != 0:
		// CGRAM address; custom glyphs are not modelled
	case b&0x20 != 0:
		l.eightBit = b&0x10 != 0
		l.twoLine = b&0x08 != 0
	case b&0x10 != 0:
		// cursor/display shift
	case b&0x08 != 0:
		l.displayOn = b&0x04 != 0
	case b&0x04 != 0:
		l.increment = b&0x02 != 0
	case b&0x02 != 0:
		l.addr = 0
		return hdExecLongUS
	case b&0x01 != 0:
		for i := range l.ddram {
			l.ddram[i] = ' '
		}
		l.addr = 0
		l.increment = true
		return hdExecLongUS
	}
	return hdExecShortUS
}

// advance moves the address counter across the two 40-byte lines
func (l *HD44780) advance() {
	if l.increment {
		switch l.addr {
		case hdLineLen - 1:
			l.addr = hdLine2Addr
		case hdLine2Addr + hdLineLen - 1:
			l.addr = 0
		default:
			l.addr++
		}
		return
	}
	switch l.addr {
	case 0:
		l.addr = hdLine2Addr + hdLineLen - 1
	case hdLine2Addr:
		l.addr = hdLineLen - 1
	default:
		l.addr--
	}
}

// Line returns the visible text of a row with trailing blanks removed
func (l *HD44780) Line(row int) string {
	if row < 0 || row >= int(l.Rows) || row > 1 {
		return ""
	}
	start := row * hdLine2Addr
	return strings.TrimRight(string(l.ddram[start:start+int(l.Cols)]), " ")
}

// Lines returns both rows
func (l *HD44780) Lines() [2]string {
	return [2]string{l.Line(0), l.Line(1)}
}

// DisplayOn reports the display control on bit
func (l *HD44780) DisplayOn() bool {
	return l.displayOn
}

// Configured reports whether the controller was set to 8-bit two-line mode
func (l *HD44780) Configured() bool {
	return l.eightBit && l.twoLine
}

// Strobes returns the number of E falling edges seen
func (l *HD44780) Strobes() uint32 {
	return l.strobes
}

// ShortPulses returns strobes whose E high time was too short
func (l *HD44780) ShortPulses() uint32 {
	return l.shortPulses
}

// Violations returns strobes issued while the controller was busy
func (l *HD44780) Violations() []Violation {
	return l.violations
}
