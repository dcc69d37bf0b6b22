package sim

import "potlcd/core"

// Source produces the analog value a channel converts
type Source interface {
	Sample(now uint32) core.ADCValue
}

// ADC is a sequencing converter with manual iteration implementing
// core.ADCDriver. Each Trigger converts the next channel of the sequence,
// ConversionUS later it stores the result, sets the channel's status bit
// and calls the completion handler. A trigger while a conversion is in
// flight is ignored, as on the real converter.
type ADC struct {
	ConversionUS uint32

	board   *Board
	sources map[core.ADCChannelID]Source

	sequence []core.ADCChannelID
	next     int
	busy     bool

	handler func()
	status  core.ADCStatus
	results map[core.ADCChannelID]core.ADCValue

	conversions map[core.ADCChannelID]uint32
	dropped     uint32
}

// NewADC returns a converter that takes conversionUS per sample
func NewADC(board *Board, conversionUS uint32) *ADC {
	if conversionUS == 0 {
		conversionUS = 1
	}
	return &ADC{
		ConversionUS: conversionUS,
		board:        board,
		sources:      make(map[core.ADCChannelID]Source),
		results:      make(map[core.ADCChannelID]core.ADCValue),
		conversions:  make(map[core.ADCChannelID]uint32),
	}
}

// Connect wires an analog source to a channel
func (a *ADC) Connect(ch core.ADCChannelID, src Source) {
	a.sources[ch] = src
}

func (a *ADC) ConfigureSequence(channels []core.ADCChannelID) error {
	if len(channels) == 0 {
		return core.ErrEmptySequence
	}
	for _, ch := range channels {
		if core.StatusFor(ch) == 0 {
			return core.ErrUnknownChannel
		}
	}
	a.sequence = append(a.sequence[:0], channels...)
	a.next = 0
	return nil
}

func (a *ADC) SetHandler(handler func()) {
	a.handler = handler
}

func (a *ADC) Trigger() error {
	if len(a.sequence) == 0 {
		return core.ErrEmptySequence
	}
	if a.busy {
		a.dropped++
		return nil
	}

	ch := a.sequence[a.next]
	a.next = (a.next + 1) % len(a.sequence)
	a.busy = true
	a.board.After(a.ConversionUS, func() { a.complete(ch) })
	return nil
}

func (a *ADC) complete(ch core.ADCChannelID) {
	a.busy = false

	var v core.ADCValue
	if src := a.sources[ch]; src != nil {
		v = src.Sample(a.board.Now())
	}
	a.results[ch] = v
	a.status |= core.StatusFor(ch)
	a.conversions[ch]++

	if a.handler != nil {
		a.handler()
	}
}

func (a *ADC) Status() core.ADCStatus {
	return a.status
}

func (a *ADC) ClearStatus(status core.ADCStatus) {
	a.status &^= status
}

func (a *ADC) Result(ch core.ADCChannelID) core.ADCValue {
	return a.results[ch]
}

// Conversions returns how many conversions completed on a channel
func (a *ADC) Conversions(ch core.ADCChannelID) uint32 {
	return a.conversions[ch]
}

// Dropped returns triggers ignored because a conversion was in flight
func (a *ADC) Dropped() uint32 {
	return a.dropped
}
