package monitor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"potlcd/host/serial"
)

// Device is a read-only connection to the firmware console
type Device struct {
	port      serial.Port
	connected atomic.Bool
}

// NewDevice creates a device (not yet connected)
func NewDevice() *Device {
	return &Device{}
}

// Connect opens the console on a serial device
func (d *Device) Connect(device string) error {
	return d.ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig opens the console with a custom serial config
func (d *Device) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	d.Attach(port)
	return nil
}

// Attach uses an already open port
func (d *Device) Attach(port serial.Port) {
	d.port = port
	d.connected.Store(true)
}

// Close closes the console
func (d *Device) Close() error {
	if !d.connected.CompareAndSwap(true, false) {
		return nil
	}
	return d.port.Close()
}

// IsConnected returns whether the console is open
func (d *Device) IsConnected() bool {
	return d.connected.Load()
}

// Stream parses console lines and hands each to fn until the port reaches
// EOF, fails, or ctx is cancelled. Cancelling closes the port.
func (d *Device) Stream(ctx context.Context, fn func(Line, error)) error {
	if !d.connected.Load() {
		return fmt.Errorf("not connected")
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			d.Close()
		case <-done:
		}
	}()

	err := scanLines(d.port, fn)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func scanLines(r io.Reader, fn func(Line, error)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if scanner.Text() == "" {
			continue
		}
		fn(Parse(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("console read failed: %w", err)
	}
	return nil
}
