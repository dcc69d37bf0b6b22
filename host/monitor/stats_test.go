package monitor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleConsole = `[FW] setup complete
[EVT] LATCH clock=40010 v1=15 v2=8192
[EVT] REFRESH_DUE clock=1047000 v1=1 v2=0
[EVT] RETRIGGER clock=1047004 v1=14 v2=0
[EVT] LATCH clock=1047008 v1=15 v2=8192
[EVT] RENDER clock=1052300 v1=0 v2=8192
[LCD] Pot: 8192 | Analog: 1.650 V
[EVT] TOGGLE clock=2547000 v1=1 v2=0
[EVT] bogus clock=x
`

func TestFilter(t *testing.T) {
	f := ParseFilter(" evt, [LCD] ,")
	assert.Len(t, f, 2)

	evt, _ := Parse("[EVT] RENDER clock=1 v1=0 v2=0")
	fw, _ := Parse("[FW] setup complete")
	assert.True(t, f.Match(evt))
	assert.False(t, f.Match(fw))

	assert.True(t, ParseFilter("").Match(fw))
}

func TestStats(t *testing.T) {
	s := NewStats()
	for _, raw := range strings.Split(strings.TrimSpace(sampleConsole), "\n") {
		s.Add(Parse(raw))
	}

	assert.Equal(t, 9, s.Lines)
	assert.Equal(t, 1, s.Malformed)
	assert.Equal(t, 2, s.Events["LATCH"])
	assert.Equal(t, 1, s.Events["TOGGLE"])
	assert.Equal(t, 1, s.Renders)
	assert.Equal(t, [2]string{"Pot: 8192", "Analog: 1.650 V"}, s.Display)
	assert.Equal(t, uint32(2547000-40010), s.Span())

	var out strings.Builder
	s.WriteSummary(&out)
	assert.Contains(t, out.String(), "renders=1")
	assert.Contains(t, out.String(), "RETRIGGER")
}
