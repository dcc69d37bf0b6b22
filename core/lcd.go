// HD44780 character LCD support
// Drives the controller in 8-bit mode over an LCDBus
package core

import "errors"

// ErrDisplayGeometry is returned for a display without rows or columns
var ErrDisplayGeometry = errors.New("display needs at least one column and one row")

// Display is what the renderer draws on
type Display interface {
	// Init brings the display up; called once from Setup
	Init() error

	// Clear blanks the display and returns the cursor home
	Clear() error

	// SetCursor moves the cursor to a column on a row (0-based)
	SetCursor(col, row uint8) error

	// Print writes text at the cursor
	Print(text []byte) error
}

// HD44780 instruction codes and flags
const (
	LCD_CLEAR_DISPLAY = 0x01
	LCD_RETURN_HOME   = 0x02
	LCD_ENTRY_MODE    = 0x04
	LCD_DISPLAY_CTRL  = 0x08
	LCD_FUNCTION_SET  = 0x20
	LCD_SET_DDRAM     = 0x80

	LCD_ENTRY_INCREMENT = 0x02
	LCD_DISPLAY_ON      = 0x04
	LCD_8BIT            = 0x10
	LCD_2LINE           = 0x08

	LCD_LINE2_OFFSET = 0x40
)

// Execution times from the HD44780 datasheet instruction table, with margin
const (
	lcdLongInstrUS  = 2000 // clear display, return home
	lcdShortInstrUS = 50   // everything else, including data writes

	// Any command with bits above RETURN_HOME set is a short instruction
	lcdNonHomeMask = 0xFC
)

// LCD is an HD44780 on a parallel bus. Each write is a blocking strobe
// followed by the instruction's settle time.
type LCD struct {
	bus   LCDBus
	delay Delayer
	cols  uint8
	rows  uint8
}

// NewLCD creates a driver for a cols x rows display
func NewLCD(bus LCDBus, delay Delayer, cols, rows uint8) *LCD {
	return &LCD{bus: bus, delay: delay, cols: cols, rows: rows}
}

// SettleMicros returns how long the controller needs after a write
func SettleMicros(mode LCDMode, code byte) uint32 {
	if mode == LCDData || code&lcdNonHomeMask != 0 {
		return lcdShortInstrUS
	}
	return lcdLongInstrUS
}

func (l *LCD) write(mode LCDMode, code byte) error {
	if err := l.bus.Write(mode, code); err != nil {
		return err
	}
	l.delay.DelayMicros(SettleMicros(mode, code))
	return nil
}

// WriteCommand sends an instruction and waits for it to execute
func (l *LCD) WriteCommand(code byte) error {
	return l.write(LCDCommand, code)
}

// WriteData writes one character at the cursor and waits for it
func (l *LCD) WriteData(b byte) error {
	return l.write(LCDData, b)
}

// Init configures the bus and runs the 8-bit power-on sequence:
// 8-bit 2-line 5x8 font, display off, clear, increment without shift,
// display on.
func (l *LCD) Init() error {
	if l.cols == 0 || l.rows == 0 {
		return ErrDisplayGeometry
	}
	if err := l.bus.Configure(); err != nil {
		return err
	}

	// Vcc rise to 4.5 V takes up to 40 ms
	l.delay.DelayMillis(40)

	if err := l.WriteCommand(LCD_FUNCTION_SET | LCD_8BIT | LCD_2LINE); err != nil {
		return err
	}
	l.delay.DelayMillis(5)

	if err := l.WriteCommand(LCD_DISPLAY_CTRL); err != nil {
		return err
	}
	l.delay.DelayMicros(150)

	if err := l.WriteCommand(LCD_CLEAR_DISPLAY); err != nil {
		return err
	}
	l.delay.DelayMicros(lcdShortInstrUS)

	if err := l.WriteCommand(LCD_ENTRY_MODE | LCD_ENTRY_INCREMENT); err != nil {
		return err
	}
	l.delay.DelayMicros(lcdLongInstrUS)

	return l.WriteCommand(LCD_DISPLAY_CTRL | LCD_DISPLAY_ON)
}

// Clear blanks the display and homes the cursor
func (l *LCD) Clear() error {
	if err := l.WriteCommand(LCD_CLEAR_DISPLAY); err != nil {
		return err
	}
	return l.WriteCommand(LCD_RETURN_HOME)
}

// SetCursor moves the DDRAM address to col on row. Rows past the second
// are clamped since the controller only has two DDRAM lines.
func (l *LCD) SetCursor(col, row uint8) error {
	if l.cols == 0 || l.rows == 0 {
		return ErrDisplayGeometry
	}
	if row >= l.rows {
		row = l.rows - 1
	}
	if row > 1 {
		row = 1
	}
	if col >= l.cols {
		col = l.cols - 1
	}
	return l.WriteCommand(LCD_SET_DDRAM | (row*LCD_LINE2_OFFSET + col))
}

// Print writes text one character at a time
func (l *LCD) Print(text []byte) error {
	for _, c := range text {
		if err := l.WriteData(c); err != nil {
			return err
		}
	}
	return nil
}
