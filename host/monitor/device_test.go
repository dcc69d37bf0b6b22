package monitor

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipePort is an in-memory serial.Port
type pipePort struct {
	io.Reader
	closed bool
}

func (p *pipePort) Write(b []byte) (int, error) { return len(b), nil }
func (p *pipePort) Flush() error                { return nil }
func (p *pipePort) Close() error {
	p.closed = true
	return nil
}

func TestDeviceStream(t *testing.T) {
	port := &pipePort{Reader: strings.NewReader(sampleConsole + "\n\n")}
	d := NewDevice()
	d.Attach(port)
	require.True(t, d.IsConnected())

	s := NewStats()
	require.NoError(t, d.Stream(context.Background(), s.Add))
	assert.Equal(t, 9, s.Lines)

	require.NoError(t, d.Close())
	assert.True(t, port.closed)
	assert.False(t, d.IsConnected())
	assert.Error(t, d.Stream(context.Background(), s.Add))
}

func TestDeviceStreamCancel(t *testing.T) {
	r, w := io.Pipe()
	d := NewDevice()
	d.Attach(&closingPort{pipePort{Reader: r}, w})

	ctx, cancel := context.WithCancel(context.Background())
	lines := make(chan Line, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- d.Stream(ctx, func(l Line, err error) { lines <- l })
	}()

	_, err := w.Write([]byte("[FW] hello\n"))
	require.NoError(t, err)
	assert.Equal(t, "FW", (<-lines).Tag)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}

// closingPort ends the reader side when closed, like a real port would
type closingPort struct {
	pipePort
	w *io.PipeWriter
}

func (p *closingPort) Close() error {
	return p.w.Close()
}
