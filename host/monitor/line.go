// Package monitor parses the firmware's debug console.
//
// The firmware prints three kinds of tagged lines:
//
//	[EVT] LATCH clock=1000042 v1=15 v2=8192
//	[LCD] Pot: 8192 | Analog: 1.650 V
//	[FW] setup complete
package monitor

import (
	"errors"
	"strconv"
	"strings"
)

// Kind classifies a console line
type Kind int

const (
	KindOther Kind = iota
	KindEvent
	KindLCD
)

var ErrMalformed = errors.New("malformed console line")

// Line is one parsed console line
type Line struct {
	Raw  string
	Tag  string // text between the leading brackets, empty if untagged
	Kind Kind
	Text string // everything after the tag

	// KindEvent
	Event  string
	Clock  uint32
	Value1 uint32
	Value2 uint32

	// KindLCD
	Display [2]string
}

// Parse splits a console line into its tag and payload. Tagged lines with
// a broken payload are returned with ErrMalformed and Kind KindOther.
func Parse(raw string) (Line, error) {
	raw = strings.TrimRight(raw, "\r\n")
	l := Line{Raw: raw, Text: raw}

	if !strings.HasPrefix(raw, "[") {
		return l, nil
	}
	end := strings.IndexByte(raw, ']')
	if end < 0 {
		return l, nil
	}
	l.Tag = raw[1:end]
	l.Text = strings.TrimPrefix(raw[end+1:], " ")

	switch l.Tag {
	case "EVT":
		return parseEvent(l)
	case "LCD":
		return parseLCD(l)
	}
	return l, nil
}

func parseEvent(l Line) (Line, error) {
	fields := strings.Fields(l.Text)
	if len(fields) == 0 {
		return l, ErrMalformed
	}
	// Dump banners: "=== Event Ring Dump ==="
	if fields[0] == "===" {
		return l, nil
	}

	ev := l
	ev.Event = fields[0]
	for _, f := range fields[1:] {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			return l, ErrMalformed
		}
		n, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return l, ErrMalformed
		}
		switch key {
		case "clock":
			ev.Clock = uint32(n)
		case "v1":
			ev.Value1 = uint32(n)
		case "v2":
			ev.Value2 = uint32(n)
		}
	}
	ev.Kind = KindEvent
	return ev, nil
}

func parseLCD(l Line) (Line, error) {
	first, second, ok := strings.Cut(l.Text, " | ")
	if !ok {
		return l, ErrMalformed
	}
	l.Kind = KindLCD
	l.Display = [2]string{first, second}
	return l, nil
}
