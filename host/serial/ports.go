//go:build !wasm

package serial

import (
	"fmt"
	"sort"
	"strings"

	bugserial "go.bug.st/serial"
)

// ListPorts returns the serial devices present on this host, sorted.
// USB CDC devices (ttyACM*, usbmodem*) come first since that is how the
// board's console enumerates.
func ListPorts() ([]string, error) {
	ports, err := bugserial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	sort.SliceStable(ports, func(i, j int) bool {
		ci, cj := isCDC(ports[i]), isCDC(ports[j])
		if ci != cj {
			return ci
		}
		return ports[i] < ports[j]
	})
	return ports, nil
}

// FindConsole returns the first USB CDC port, or the first port if there
// is no CDC device
func FindConsole() (string, error) {
	ports, err := ListPorts()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", fmt.Errorf("no serial ports found")
	}
	return ports[0], nil
}

func isCDC(name string) bool {
	return strings.Contains(name, "ttyACM") || strings.Contains(name, "usbmodem")
}
