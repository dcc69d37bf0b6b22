package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"potlcd/core"
)

func TestBoard_EventOrder(t *testing.T) {
	b := NewBoard()
	var got []string

	b.At(300, func() { got = append(got, "c") })
	b.At(100, func() { got = append(got, "a") })
	b.At(300, func() { got = append(got, "d") })
	b.At(200, func() { got = append(got, "b") })

	b.Advance(250)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, uint32(250), b.Now())
	assert.Equal(t, uint32(250), core.GetTime())

	b.Advance(50)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Equal(t, 0, b.Pending())
	assert.Equal(t, uint64(4), b.Fired())
}

func TestBoard_EventSeesItsTime(t *testing.T) {
	b := NewBoard()
	var at uint32
	b.After(1234, func() { at = core.GetTime() })

	b.Advance(5000)
	assert.Equal(t, uint32(1234), at)
}

func TestBoard_DispatchesScheduler(t *testing.T) {
	b := NewBoard()
	sched := core.NewScheduler()
	b.AttachScheduler(sched)

	var firedAt []uint32
	tm := &core.Timer{WakeTime: 1000}
	tm.Handler = func(t *core.Timer) uint8 {
		firedAt = append(firedAt, core.GetTime())
		if len(firedAt) < 3 {
			t.WakeTime += 1000
			return core.SF_RESCHEDULE
		}
		return core.SF_DONE
	}
	sched.Schedule(tm)

	b.Advance(10000)
	assert.Equal(t, []uint32{1000, 2000, 3000}, firedAt)
}

func TestBoard_AdvanceToNext(t *testing.T) {
	b := NewBoard()
	b.At(700, func() {})

	require.True(t, b.AdvanceToNext(1000))
	assert.Equal(t, uint32(700), b.Now())

	require.False(t, b.AdvanceToNext(1000))
	assert.Equal(t, uint32(1000), b.Now())
	assert.False(t, b.Before(1000))
}

func TestBoard_DelayAdvancesClock(t *testing.T) {
	b := NewBoard()
	fired := false
	b.At(1500, func() { fired = true })

	d := b.Delay()
	d.DelayMicros(1000)
	assert.False(t, fired)
	d.DelayMillis(1)
	assert.True(t, fired)
	assert.Equal(t, uint32(2000), b.Now())
}

func TestGPIO_EdgeInterrupts(t *testing.T) {
	g := NewGPIO()
	pin := core.GPIOPin(1)
	require.NoError(t, g.ConfigureInputPullUp(pin))

	var edges []core.GPIOPin
	require.NoError(t, g.SetInterrupt(pin, core.EdgeFalling, func(p core.GPIOPin) { edges = append(edges, p) }))

	g.Drive(pin, false)
	g.Drive(pin, false) // no transition
	g.Drive(pin, true)
	g.Drive(pin, false)

	assert.Len(t, edges, 2)
	assert.Equal(t, uint32(2), g.Interrupts())
}

func TestGPIO_OutputWatchers(t *testing.T) {
	g := NewGPIO()
	pin := core.GPIOPin(3)
	require.NoError(t, g.ConfigureOutput(pin))
	assert.Error(t, g.SetInterrupt(pin, core.EdgeBoth, func(core.GPIOPin) {}))

	var seen []bool
	g.Watch(func(p core.GPIOPin, level bool) { seen = append(seen, level) })

	require.NoError(t, g.SetPin(pin, true))
	require.NoError(t, g.SetPin(pin, true))
	require.NoError(t, g.SetPin(pin, false))
	assert.Equal(t, []bool{true, false}, seen)

	level, err := g.GetPin(pin)
	require.NoError(t, err)
	assert.False(t, level)
}

func TestButton_Bounce(t *testing.T) {
	b := NewBoard()
	g := NewGPIO()
	pin := core.GPIOPin(1)
	require.NoError(t, g.ConfigureInputPullUp(pin))

	falling := 0
	require.NoError(t, g.SetInterrupt(pin, core.EdgeFalling, func(core.GPIOPin) { falling++ }))

	btn := NewButton(b, g, pin, 2, 100)
	btn.PressAt(1000)
	b.Advance(2000)

	assert.Equal(t, 3, falling)
	assert.False(t, g.Level(pin), "contact should settle closed")
	assert.Equal(t, uint32(400), btn.Settle())
}

func TestADC_Sequence(t *testing.T) {
	b := NewBoard()
	adc := NewADC(b, 10)
	adc.Connect(14, &Pot{Code: 111})
	adc.Connect(15, &Pot{Code: 222})

	require.ErrorIs(t, adc.Trigger(), core.ErrEmptySequence)
	require.ErrorIs(t, adc.ConfigureSequence(nil), core.ErrEmptySequence)
	require.ErrorIs(t, adc.ConfigureSequence([]core.ADCChannelID{40}), core.ErrUnknownChannel)
	require.NoError(t, adc.ConfigureSequence([]core.ADCChannelID{14, 15}))

	var completed []core.ADCStatus
	adc.SetHandler(func() {
		st := adc.Status()
		completed = append(completed, st)
		adc.ClearStatus(st)
	})

	require.NoError(t, adc.Trigger())
	require.NoError(t, adc.Trigger()) // busy, dropped
	b.Advance(10)
	require.NoError(t, adc.Trigger())
	b.Advance(10)
	require.NoError(t, adc.Trigger())
	b.Advance(10)

	assert.Equal(t, []core.ADCStatus{core.StatusFor(14), core.StatusFor(15), core.StatusFor(14)}, completed)
	assert.Equal(t, core.ADCValue(111), adc.Result(14))
	assert.Equal(t, core.ADCValue(222), adc.Result(15))
	assert.Equal(t, uint32(1), adc.Dropped())
	assert.Equal(t, uint32(2), adc.Conversions(14))
}

func TestPhoto_Sample(t *testing.T) {
	p := &Photo{Base: 6000, Amplitude: 2000, PeriodUS: 4000}

	assert.Equal(t, core.ADCValue(6000), p.Sample(0))
	assert.InDelta(t, 8000, float64(p.Sample(1000)), 1)
	assert.InDelta(t, 4000, float64(p.Sample(3000)), 1)

	bright := &Photo{Base: 16000, Amplitude: 2000, PeriodUS: 4000}
	assert.Equal(t, core.ADCValue(MaxCode), bright.Sample(1000))

	assert.Equal(t, core.ADCValue(MaxCode), (&Pot{Code: 20000}).Sample(0))
}
