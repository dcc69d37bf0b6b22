package sim

import "potlcd/core"

// Button is an active-low pushbutton whose contacts chatter when they
// close. Each bounce is an open/close pair BounceUS apart, so a press with
// Bounces=2 produces three falling edges. Release is clean.
type Button struct {
	Pin      core.GPIOPin
	Bounces  int
	BounceUS uint32

	gpio  *GPIO
	board *Board
}

// NewButton attaches a button to pin
func NewButton(board *Board, gpio *GPIO, pin core.GPIOPin, bounces int, bounceUS uint32) *Button {
	return &Button{Pin: pin, Bounces: bounces, BounceUS: bounceUS, gpio: gpio, board: board}
}

// PressAt closes the contact at the given time
func (b *Button) PressAt(at uint32) {
	b.board.At(at, func() { b.gpio.Drive(b.Pin, false) })
	for i := 0; i < b.Bounces; i++ {
		open := at + uint32(2*i+1)*b.BounceUS
		closed := at + uint32(2*i+2)*b.BounceUS
		b.board.At(open, func() { b.gpio.Drive(b.Pin, true) })
		b.board.At(closed, func() { b.gpio.Drive(b.Pin, false) })
	}
}

// ReleaseAt opens the contact at the given time
func (b *Button) ReleaseAt(at uint32) {
	b.board.At(at, func() { b.gpio.Drive(b.Pin, true) })
}

// Click presses at the given time and releases hold microseconds later
func (b *Button) Click(at, hold uint32) {
	b.PressAt(at)
	b.ReleaseAt(at + hold)
}

// Settle returns how long the contact takes to stop bouncing
func (b *Button) Settle() uint32 {
	return 2 * uint32(b.Bounces) * b.BounceUS
}
