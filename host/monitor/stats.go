package monitor

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Filter selects lines by tag. An empty filter passes everything.
type Filter map[string]bool

// ParseFilter builds a filter from a comma separated tag list ("EVT,LCD")
func ParseFilter(tags string) Filter {
	f := Filter{}
	for _, tag := range strings.Split(tags, ",") {
		tag = strings.ToUpper(strings.Trim(strings.TrimSpace(tag), "[]"))
		if tag != "" {
			f[tag] = true
		}
	}
	return f
}

// Match reports whether a line passes the filter
func (f Filter) Match(l Line) bool {
	return len(f) == 0 || f[l.Tag]
}

// Stats keeps running counters over a console stream
type Stats struct {
	Lines     int
	Malformed int
	Events    map[string]int
	Renders   int
	Display   [2]string

	firstClock, lastClock uint32
	haveClock             bool
}

// NewStats returns empty counters
func NewStats() *Stats {
	return &Stats{Events: make(map[string]int)}
}

// Add folds one parsed line into the counters
func (s *Stats) Add(l Line, err error) {
	s.Lines++
	if err != nil {
		s.Malformed++
		return
	}

	switch l.Kind {
	case KindEvent:
		s.Events[l.Event]++
		if !s.haveClock {
			s.firstClock = l.Clock
			s.haveClock = true
		}
		s.lastClock = l.Clock
	case KindLCD:
		s.Renders++
		s.Display = l.Display
	}
}

// Span returns the firmware clock ticks covered by the events seen
func (s *Stats) Span() uint32 {
	return s.lastClock - s.firstClock
}

// WriteSummary prints counters sorted by event name
func (s *Stats) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "lines=%d malformed=%d renders=%d span=%dus\n", s.Lines, s.Malformed, s.Renders, s.Span())

	names := make([]string, 0, len(s.Events))
	for name := range s.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %d\n", name, s.Events[name])
	}
	if s.Renders > 0 {
		fmt.Fprintf(w, "display: %q / %q\n", s.Display[0], s.Display[1])
	}
}
