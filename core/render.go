package core

// Renderer draws the selected sensor's reading on a two-line display:
//
//	Pot: 8192
//	Analog: 1.650 V
type Renderer struct {
	VRefMillivolts uint32
	FullScale      uint32 // conversion codes, 1 << resolution bits

	state   *State
	display Display

	line1 [20]byte
	line2 [20]byte
}

// NewRenderer creates a renderer for a converter with the given reference
// voltage and resolution
func NewRenderer(state *State, display Display, vrefMillivolts uint32, resolutionBits uint8) *Renderer {
	return &Renderer{
		VRefMillivolts: vrefMillivolts,
		FullScale:      uint32(1) << resolutionBits,
		state:          state,
		display:        display,
	}
}

// Lines formats both display lines for a selection and reading. The
// returned slices alias the renderer's buffers.
func (r *Renderer) Lines(sel Sensor, reading ADCValue) (line1, line2 []byte) {
	line1 = append(r.line1[:0], sel.Label()...)
	line1 = append(line1, ": "...)
	line1 = appendUint(line1, uint32(reading))

	line2 = append(r.line2[:0], "Analog: "...)
	line2 = appendMillivolts(line2, Millivolts(reading, r.VRefMillivolts, r.FullScale))
	line2 = append(line2, " V"...)
	return line1, line2
}

// Render draws the current state. The selection and the reading are read
// separately, so a toggle landing mid-render can pair the new label with
// the previous sensor's value for one refresh.
func (r *Renderer) Render() (Sensor, ADCValue, error) {
	sel := r.state.Selection()
	reading := r.state.Reading()
	line1, line2 := r.Lines(sel, reading)

	if err := r.display.Clear(); err != nil {
		return sel, reading, err
	}
	if err := r.display.Print(line1); err != nil {
		return sel, reading, err
	}
	if err := r.display.SetCursor(0, 1); err != nil {
		return sel, reading, err
	}
	return sel, reading, r.display.Print(line2)
}
