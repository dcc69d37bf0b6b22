package sim

import (
	"fmt"
	"io"
	"time"

	"potlcd/core"
)

// Sim is the whole board: simulated peripherals registered as the core
// drivers and the unmodified firmware running on them.
//
// The core keeps its drivers, clock and event ring in package state, so
// only one Sim may run at a time.
type Sim struct {
	Config *Config

	Board    *Board
	GPIO     *GPIO
	ADC      *ADC
	LCD      *HD44780
	Button   *Button
	Pot      *Pot
	Photo    *Photo
	Firmware *core.Firmware

	console []string
	out     io.Writer
}

// New builds a simulator from cfg. Console lines are kept in memory and
// also written to out when it is not nil.
func New(cfg *Config, out io.Writer) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fwCfg, err := cfg.CoreConfig()
	if err != nil {
		return nil, err
	}

	s := &Sim{Config: cfg, out: out}
	s.Board = NewBoard()
	s.GPIO = NewGPIO()
	s.ADC = NewADC(s.Board, micros(cfg.ADC.Conversion))

	s.Pot = &Pot{Code: core.ADCValue(cfg.Pot.Code)}
	s.Photo = &Photo{
		Base:      cfg.Photo.Base,
		Amplitude: cfg.Photo.Amplitude,
		PeriodUS:  micros(cfg.Photo.Period),
	}
	s.ADC.Connect(fwCfg.PotChannel, s.Pot)
	s.ADC.Connect(fwCfg.PhotoChannel, s.Photo)

	var data [8]core.GPIOPin
	for i, p := range cfg.Pins.Data {
		data[i] = core.GPIOPin(p)
	}
	rs, en := core.GPIOPin(cfg.Pins.RS), core.GPIOPin(cfg.Pins.EN)
	s.LCD = NewHD44780(s.Board, s.GPIO, rs, en, data, cfg.Display.Cols, cfg.Display.Rows)

	s.Button = NewButton(s.Board, s.GPIO, fwCfg.SwitchPin, cfg.Button.Bounces, micros(cfg.Button.BounceInterval))

	core.SetGPIODriver(s.GPIO)
	core.SetADCDriver(s.ADC)
	core.ClearEventRing()
	core.SetDebugWriter(s.writeConsole)
	core.SetDebugEnabled(cfg.Debug)

	delay := s.Board.Delay()
	display := core.NewLCD(core.NewGPIOBus(rs, en, data, delay), delay, cfg.Display.Cols, cfg.Display.Rows)
	s.Firmware = core.NewFirmware(fwCfg, display)
	s.Board.AttachScheduler(s.Firmware.Sched)
	return s, nil
}

func (s *Sim) writeConsole(line string) {
	s.console = append(s.console, line)
	if s.out != nil {
		fmt.Fprintln(s.out, line)
	}
}

// Console returns every debug line the firmware printed
func (s *Sim) Console() []string {
	return s.console
}

// Setup runs the firmware's setup, including the display power-on wait,
// then queues the configured button presses relative to its end.
func (s *Sim) Setup() error {
	if err := s.Firmware.Setup(); err != nil {
		return err
	}
	start := s.Board.Now()
	hold := micros(s.Config.Button.Hold)
	for _, at := range s.Config.Button.Presses {
		s.Button.Click(start+micros(at), hold)
	}
	return nil
}

// Run executes the foreground loop for d of virtual time
func (s *Sim) Run(d time.Duration) {
	end := s.Board.Now() + micros(d)
	for s.Board.Before(end) {
		s.Firmware.Step()
		s.Board.AdvanceToNext(end)
	}
	s.Firmware.Step()
}

// Report summarises a run
type Report struct {
	Elapsed     time.Duration
	Renders     uint32
	Toggles     uint32
	Ignored     uint32
	Latches     uint32
	Retriggers  uint32
	Violations  int
	ShortPulses uint32
	Lines       [2]string
}

// Report returns counters from the firmware and the peripherals
func (s *Sim) Report() Report {
	fw := s.Firmware
	return Report{
		Elapsed:     time.Duration(s.Board.Now()) * time.Microsecond,
		Renders:     fw.Renders(),
		Toggles:     fw.Switch.Toggles(),
		Ignored:     fw.Switch.Ignored(),
		Latches:     fw.Sampler.Latches(),
		Retriggers:  fw.Sampler.Retriggers(),
		Violations:  len(s.LCD.Violations()),
		ShortPulses: s.LCD.ShortPulses(),
		Lines:       s.LCD.Lines(),
	}
}
