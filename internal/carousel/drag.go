package carousel

type dragState struct {
	active     bool
	startX     float64
	currentX   float64
	baseOffset float64
}

func (d dragState) delta() float64 { return d.currentX - d.startX }

func (d dragState) live() float64 { return d.baseOffset + d.delta() }

// Threshold is the drag distance needed to change slides.
//
// It is a fixed distance: a fast flick shorter than the threshold does not
// change slides.
func (e *Engine) Threshold() float64 {
	if e.opts.DragThreshold > 0 {
		return e.opts.DragThreshold
	}
	return max(e.opts.MinDragThreshold, dragThresholdRatio*e.geom.Step)
}

// Dragging reports whether a drag is in progress.
func (e *Engine) Dragging() bool { return e.drag.active }

// DragStart begins following the pointer at x.
//
// Any pending settle is cancelled. If a clone is showing, the engine first
// re-anchors onto the matching real slide.
func (e *Engine) DragStart(x float64) {
	if !e.live() {
		return
	}
	e.stopSettle()
	e.correct()
	e.drag = dragState{
		active:     true,
		startX:     x,
		currentX:   x,
		baseOffset: e.offsetFor(e.index),
	}
	e.phase = PhaseDragging
	e.stopAutoplayTimer()
	e.setOffset(e.drag.baseOffset, 0)
}

// DragMove moves the track 1:1 with the pointer.
func (e *Engine) DragMove(x float64) {
	if !e.drag.active || e.status != StatusReady {
		return
	}
	e.drag.currentX = x
	e.setOffset(e.drag.live(), 0)
}

// DragEnd releases the drag. Past the threshold the engine moves one slide in
// the dragged direction, otherwise it animates back to the resting offset.
// Autoplay resumes once that navigation settles.
func (e *Engine) DragEnd() {
	if !e.drag.active {
		return
	}
	delta := e.drag.delta()
	e.drag = dragState{}
	e.phase = PhaseIdle
	if e.status != StatusReady {
		return
	}

	threshold := e.Threshold()
	switch {
	case delta > threshold:
		e.shift(-1)
	case delta < -threshold:
		e.shift(1)
	default:
		e.navigate(e.index)
	}
}
