package sim

import (
	"github.com/chewxy/math32"

	"potlcd/core"
)

// MaxCode is the largest 14-bit conversion code
const MaxCode = 16383

// Pot is a potentiometer wiper held at a fixed code
type Pot struct {
	Code core.ADCValue
}

func (p *Pot) Sample(now uint32) core.ADCValue {
	if p.Code > MaxCode {
		return MaxCode
	}
	return p.Code
}

// Photo is a photoresistor divider under slowly varying light: a sine of
// Amplitude codes around Base with the given period.
type Photo struct {
	Base      float32
	Amplitude float32
	PeriodUS  uint32
}

func (p *Photo) Sample(now uint32) core.ADCValue {
	v := p.Base
	if p.PeriodUS > 0 {
		phase := 2 * math32.Pi * float32(now%p.PeriodUS) / float32(p.PeriodUS)
		v += p.Amplitude * math32.Sin(phase)
	}
	v = math32.Max(0, math32.Min(v, MaxCode))
	return core.ADCValue(v + 0.5)
}
