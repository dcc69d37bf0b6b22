package core

import "fmt"

// Config is the compile-time firmware configuration
type Config struct {
	SwitchPin  GPIOPin
	SwitchEdge PinEdge

	PotChannel   ADCChannelID
	PhotoChannel ADCChannelID

	DebounceWindowUS uint32
	RefreshPeriodUS  uint32
	RefreshMode      RefreshMode

	// RetriggerOnRender starts a conversion at the top of each render so the
	// sequence keeps moving even if a completion was lost
	RetriggerOnRender bool

	VRefMillivolts uint32
	ResolutionBits uint8

	DisplayCols uint8
	DisplayRows uint8
}

// DefaultConfig returns the course board wiring: switch on a falling edge,
// 5 ms debounce, one refresh per second, 3.3 V reference, 14-bit codes.
func DefaultConfig() Config {
	return Config{
		SwitchPin:         1,
		SwitchEdge:        EdgeFalling,
		PotChannel:        0,
		PhotoChannel:      1,
		DebounceWindowUS:  5000,
		RefreshPeriodUS:   1000000,
		RefreshMode:       RefreshPeriodic,
		RetriggerOnRender: true,
		VRefMillivolts:    3300,
		ResolutionBits:    14,
		DisplayCols:       16,
		DisplayRows:       2,
	}
}

// Firmware wires the shared state, the interrupt-side components and the
// foreground render loop together.
type Firmware struct {
	Config Config

	State    *State
	Sched    *Scheduler
	Switch   *Switch
	Sampler  *AnalogSampler
	Refresh  *RefreshTimer
	Renderer *Renderer
	Display  Display

	renders       uint32
	displayErrors uint32
}

// NewFirmware builds the components for cfg. Drivers are looked up at
// Setup, so targets may register them after this call.
func NewFirmware(cfg Config, display Display) *Firmware {
	state := NewState()
	sched := NewScheduler()
	return &Firmware{
		Config:   cfg,
		State:    state,
		Sched:    sched,
		Switch:   NewSwitch(cfg.SwitchPin, cfg.SwitchEdge, TimerFromUS(cfg.DebounceWindowUS), state, sched),
		Sampler:  NewAnalogSampler(state, cfg.PotChannel, cfg.PhotoChannel),
		Refresh:  NewRefreshTimer(TimerFromUS(cfg.RefreshPeriodUS), cfg.RefreshMode, state, sched),
		Renderer: NewRenderer(state, display, cfg.VRefMillivolts, cfg.ResolutionBits),
		Display:  display,
	}
}

// Setup configures every peripheral and starts the refresh timer.
// The first error aborts startup.
func (f *Firmware) Setup() error {
	if err := f.Switch.Configure(); err != nil {
		return fmt.Errorf("configure switch: %w", err)
	}
	if err := f.Sampler.Configure(); err != nil {
		return fmt.Errorf("configure sampler: %w", err)
	}
	if err := f.Display.Init(); err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	f.Refresh.Start()
	DebugPrintln("[FW] setup complete")
	return nil
}

// Step renders once if a refresh is due, then prints pending events.
// Returns whether a render happened.
func (f *Firmware) Step() bool {
	rendered := false
	if f.State.RefreshDue() {
		f.render()
		f.State.clearRefreshDue()
		f.Refresh.Rearm()
		rendered = true
	}
	FlushEvents()
	return rendered
}

func (f *Firmware) render() {
	if f.Config.RetriggerOnRender {
		if err := f.Sampler.Trigger(); err != nil {
			DebugPrintln("[FW] trigger failed: " + err.Error())
		}
	}

	sel, reading, err := f.Renderer.Render()
	f.renders++
	if err != nil {
		f.displayErrors++
		RecordEvent(EvtDisplayError, uint32(sel), uint32(reading))
		DebugPrintln("[FW] display error: " + err.Error())
		return
	}
	RecordEvent(EvtRender, uint32(sel), uint32(reading))

	if IsDebugEnabled() {
		line1, line2 := f.Renderer.Lines(sel, reading)
		DebugPrintln("[LCD] " + string(line1) + " | " + string(line2))
	}
}

// Run loops forever. idle is called between steps; targets use it to
// sleep until the next interrupt or to feed a watchdog.
func (f *Firmware) Run(idle func()) {
	for {
		f.Step()
		if idle != nil {
			idle()
		}
	}
}

// Renders returns the number of render attempts
func (f *Firmware) Renders() uint32 {
	return f.renders
}

// DisplayErrors returns the number of renders that hit a display error
func (f *Firmware) DisplayErrors() uint32 {
	return f.displayErrors
}
