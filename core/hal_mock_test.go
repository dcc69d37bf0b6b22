package core

import "errors"

// MockGPIODriver records pin levels, configuration and every write in order
type MockGPIODriver struct {
	pins     map[GPIOPin]bool
	outputs  map[GPIOPin]bool
	pullups  map[GPIOPin]bool
	handlers map[GPIOPin]PinHandler
	edges    map[GPIOPin]PinEdge
	writes   []pinWrite
	failPin  GPIOPin
	failErr  error

	// strict rejects writes to pins not configured as outputs
	strict bool
}

var errNotOutput = errors.New("pin not configured as output")

type pinWrite struct {
	pin   GPIOPin
	value bool
}

func NewMockGPIODriver() *MockGPIODriver {
	return &MockGPIODriver{
		pins:     make(map[GPIOPin]bool),
		outputs:  make(map[GPIOPin]bool),
		pullups:  make(map[GPIOPin]bool),
		handlers: make(map[GPIOPin]PinHandler),
		edges:    make(map[GPIOPin]PinEdge),
	}
}

func (m *MockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	m.outputs[pin] = true
	return nil
}

func (m *MockGPIODriver) ConfigureInputPullUp(pin GPIOPin) error {
	m.pullups[pin] = true
	m.pins[pin] = true
	return nil
}

func (m *MockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	if m.failErr != nil && pin == m.failPin {
		return m.failErr
	}
	if m.strict && !m.outputs[pin] {
		return errNotOutput
	}
	m.pins[pin] = value
	m.writes = append(m.writes, pinWrite{pin, value})
	return nil
}

func (m *MockGPIODriver) GetPin(pin GPIOPin) (bool, error) {
	return m.pins[pin], nil
}

func (m *MockGPIODriver) SetInterrupt(pin GPIOPin, edge PinEdge, handler PinHandler) error {
	if handler == nil {
		delete(m.handlers, pin)
		return nil
	}
	m.handlers[pin] = handler
	m.edges[pin] = edge
	return nil
}

// fire delivers one interrupt for pin, the way the hardware would
func (m *MockGPIODriver) fire(pin GPIOPin) {
	if h := m.handlers[pin]; h != nil {
		h(pin)
	}
}

// MockADCDriver is a sequencing converter whose completions are driven by
// the test through complete()
type MockADCDriver struct {
	sequence []ADCChannelID
	handler  func()
	status   ADCStatus
	results  map[ADCChannelID]ADCValue
	triggers   int
	cleared    ADCStatus
	triggerErr error
}

func NewMockADCDriver() *MockADCDriver {
	return &MockADCDriver{results: make(map[ADCChannelID]ADCValue)}
}

func (m *MockADCDriver) ConfigureSequence(channels []ADCChannelID) error {
	if len(channels) == 0 {
		return ErrEmptySequence
	}
	m.sequence = append(m.sequence[:0], channels...)
	return nil
}

func (m *MockADCDriver) SetHandler(handler func()) {
	m.handler = handler
}

func (m *MockADCDriver) Trigger() error {
	m.triggers++
	return m.triggerErr
}

func (m *MockADCDriver) Status() ADCStatus {
	return m.status
}

func (m *MockADCDriver) ClearStatus(status ADCStatus) {
	m.cleared |= status
	m.status &^= status
}

func (m *MockADCDriver) Result(ch ADCChannelID) ADCValue {
	return m.results[ch]
}

// complete finishes a conversion on ch with value and raises the interrupt
func (m *MockADCDriver) complete(ch ADCChannelID, value ADCValue) {
	m.results[ch] = value
	m.status |= StatusFor(ch)
	if m.handler != nil {
		m.handler()
	}
}

// recordDelay sums requested delays instead of waiting
type recordDelay struct {
	calls []uint32 // microseconds per call
}

func (d *recordDelay) DelayMicros(us uint32) {
	d.calls = append(d.calls, us)
}

func (d *recordDelay) DelayMillis(ms uint32) {
	d.calls = append(d.calls, ms*1000)
}

func (d *recordDelay) total() uint32 {
	var sum uint32
	for _, us := range d.calls {
		sum += us
	}
	return sum
}

// busWrite is one strobe seen by recordBus
type busWrite struct {
	mode LCDMode
	b    byte
}

// recordBus is an LCDBus that records strobes and can fail on demand
type recordBus struct {
	configured bool
	writes     []busWrite
	failAfter  int // fail the write with this index; <0 never
}

func newRecordBus() *recordBus {
	return &recordBus{failAfter: -1}
}

var errBusFault = errors.New("bus fault")

func (b *recordBus) Configure() error {
	b.configured = true
	return nil
}

func (b *recordBus) Write(mode LCDMode, v byte) error {
	if b.failAfter >= 0 && len(b.writes) == b.failAfter {
		return errBusFault
	}
	b.writes = append(b.writes, busWrite{mode, v})
	return nil
}

// textDisplay is a Display that keeps the two lines as strings
type textDisplay struct {
	lines  [2][]byte
	row    uint8
	inits  int
	clears int
	err    error
}

func (d *textDisplay) Init() error {
	d.inits++
	return d.err
}

func (d *textDisplay) Clear() error {
	if d.err != nil {
		return d.err
	}
	d.clears++
	d.lines[0], d.lines[1], d.row = nil, nil, 0
	return nil
}

func (d *textDisplay) SetCursor(col, row uint8) error {
	if d.err != nil {
		return d.err
	}
	d.row = row
	return nil
}

func (d *textDisplay) Print(text []byte) error {
	if d.err != nil {
		return d.err
	}
	d.lines[d.row] = append(d.lines[d.row], text...)
	return nil
}

func (d *textDisplay) line(row int) string {
	return string(d.lines[row])
}

// resetCore puts package globals back to power-on values between tests
func resetCore() (*MockGPIODriver, *MockADCDriver) {
	gpio := NewMockGPIODriver()
	adc := NewMockADCDriver()
	SetGPIODriver(gpio)
	SetADCDriver(adc)
	SetTime(0)
	ClearEventRing()
	SetDebugWriter(func(string) {})
	SetDebugEnabled(false)
	return gpio, adc
}
