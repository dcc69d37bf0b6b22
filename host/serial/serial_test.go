package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")

	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, 100, cfg.ReadTimeout)
}

func TestOpen_BadConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)

	_, err = Open(&Config{})
	assert.Error(t, err)
}

func TestIsCDC(t *testing.T) {
	assert.True(t, isCDC("/dev/ttyACM0"))
	assert.True(t, isCDC("/dev/cu.usbmodem1101"))
	assert.False(t, isCDC("/dev/ttyS0"))
	assert.False(t, isCDC("COM3"))
}
