// Package viewport maps simulation units to device pixels.
package viewport

// State is the derived mapping between simulation space and the drawing
// surface. The surface is anchored at the top-left corner of the window.
type State struct {
	PixelsPerUnit float64
	WidthPx       float64
	HeightPx      float64
}

// Recompute fits a simW x simH space into a windowW x windowH window with a
// uniform scale. The binding axis fills the window exactly.
func Recompute(windowW, windowH, simW, simH float64) State {
	scale := windowW / simW
	if windowH < simH*scale {
		scale = windowH / simH
	}
	return State{
		PixelsPerUnit: scale,
		WidthPx:       simW * scale,
		HeightPx:      simH * scale,
	}
}

// ToScreen converts a simulation-space box to the top-left pixel position of
// its drawing. The simulation's Y axis points up, the surface's points down.
func (s State) ToScreen(x, y, height float64) (float64, float64) {
	return x * s.PixelsPerUnit, s.HeightPx - (y+height)*s.PixelsPerUnit
}

// Size converts a simulation-space extent to pixels.
func (s State) Size(w, h float64) (float64, float64) {
	return w * s.PixelsPerUnit, h * s.PixelsPerUnit
}

// Surface is resized whenever the viewport changes.
type Surface interface {
	Resize(widthPx, heightPx int)
}

// Transform owns the process-wide viewport state. A resize that arrives
// before the simulation dimensions are known is held until SetSpace.
type Transform struct {
	surface Surface

	windowW, windowH float64
	simW, simH       float64
	state            State
	valid            bool
}

func NewTransform(surface Surface) *Transform {
	return &Transform{surface: surface}
}

// SetSpace records the simulation dimensions and applies any pending resize.
func (t *Transform) SetSpace(simW, simH float64) (State, bool) {
	if simW <= 0 || simH <= 0 {
		return t.state, t.valid
	}
	if t.valid && simW == t.simW && simH == t.simH {
		return t.state, true
	}
	t.simW, t.simH = simW, simH
	return t.apply()
}

// Resize handles a window resize notification. It never touches entity
// visuals.
func (t *Transform) Resize(windowW, windowH float64) (State, bool) {
	if windowW <= 0 || windowH <= 0 {
		return t.state, t.valid
	}
	if t.valid && windowW == t.windowW && windowH == t.windowH {
		return t.state, true
	}
	t.windowW, t.windowH = windowW, windowH
	return t.apply()
}

func (t *Transform) apply() (State, bool) {
	if t.simW <= 0 || t.simH <= 0 || t.windowW <= 0 || t.windowH <= 0 {
		return t.state, false
	}
	t.state = Recompute(t.windowW, t.windowH, t.simW, t.simH)
	t.valid = true
	if t.surface != nil {
		t.surface.Resize(int(t.state.WidthPx), int(t.state.HeightPx))
	}
	return t.state, true
}

// State returns the current viewport and whether it has been computed.
func (t *Transform) State() (State, bool) {
	return t.state, t.valid
}
