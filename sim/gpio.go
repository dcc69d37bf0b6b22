package sim

import (
	"fmt"

	"potlcd/core"
)

type pinState struct {
	output  bool
	pullUp  bool
	level   bool
	edge    core.PinEdge
	handler core.PinHandler
}

// PinWatcher observes output level changes
type PinWatcher func(pin core.GPIOPin, level bool)

// GPIO is a simulated GPIO bank implementing core.GPIODriver.
// Inputs are driven from outside with Drive; outputs notify watchers.
type GPIO struct {
	pins     map[core.GPIOPin]*pinState
	watchers []PinWatcher

	interrupts uint32
}

// NewGPIO returns a bank with every pin floating low
func NewGPIO() *GPIO {
	return &GPIO{pins: make(map[core.GPIOPin]*pinState)}
}

func (g *GPIO) pin(p core.GPIOPin) *pinState {
	ps, ok := g.pins[p]
	if !ok {
		ps = &pinState{}
		g.pins[p] = ps
	}
	return ps
}

// Watch registers a watcher for output changes
func (g *GPIO) Watch(w PinWatcher) {
	g.watchers = append(g.watchers, w)
}

func (g *GPIO) ConfigureOutput(pin core.GPIOPin) error {
	g.pin(pin).output = true
	return nil
}

func (g *GPIO) ConfigureInputPullUp(pin core.GPIOPin) error {
	ps := g.pin(pin)
	ps.output = false
	ps.pullUp = true
	ps.level = true
	return nil
}

func (g *GPIO) SetPin(pin core.GPIOPin, value bool) error {
	ps := g.pin(pin)
	if ps.level == value {
		return nil
	}
	ps.level = value
	if ps.output {
		for _, w := range g.watchers {
			w(pin, value)
		}
	}
	return nil
}

func (g *GPIO) GetPin(pin core.GPIOPin) (bool, error) {
	return g.pin(pin).level, nil
}

func (g *GPIO) SetInterrupt(pin core.GPIOPin, edge core.PinEdge, handler core.PinHandler) error {
	ps := g.pin(pin)
	if ps.output {
		return fmt.Errorf("pin %d is an output", pin)
	}
	ps.edge = edge
	ps.handler = handler
	return nil
}

// Level returns the current level of a pin
func (g *GPIO) Level(pin core.GPIOPin) bool {
	return g.pin(pin).level
}

// Interrupts returns how many pin interrupts were delivered
func (g *GPIO) Interrupts() uint32 {
	return g.interrupts
}

// Drive sets an input pin level from outside the chip. A transition that
// matches the armed edge delivers exactly one interrupt.
func (g *GPIO) Drive(pin core.GPIOPin, level bool) {
	ps := g.pin(pin)
	if ps.level == level {
		return
	}
	ps.level = level
	if ps.handler == nil {
		return
	}

	fire := false
	switch ps.edge {
	case core.EdgeFalling:
		fire = !level
	case core.EdgeRising:
		fire = level
	case core.EdgeBoth:
		fire = true
	}
	if fire {
		g.interrupts++
		ps.handler(pin)
	}
}
