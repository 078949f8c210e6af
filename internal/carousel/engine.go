package carousel

import (
	"math"
	"time"
)

// Engine keeps an infinite strip of N slides using N+2 rendered entries.
//
// All methods must be called from the same event loop that delivers Clock
// callbacks. The engine never blocks and owns no goroutines.
type Engine struct {
	track  Track
	layout Layout
	clock  Clock
	opts   Options

	slides []Rendered
	n      int

	geom   Geometry
	index  int
	offset float64
	phase  Phase
	status Status

	settle Timer
	drag   dragState
	auto   autoplayState
}

// New builds an engine for slides and applies the first slide instantly.
//
// With no slides the engine stays Empty and every operation is a no-op. When
// the layout cannot be measured the engine is Deferred until Resize succeeds.
func New(slides []Slide, track Track, layout Layout, clock Clock, opts Options) *Engine {
	e := &Engine{
		track:  track,
		layout: layout,
		clock:  clock,
		opts:   opts.withDefaults(),
		n:      len(slides),
		index:  1,
	}
	if e.n == 0 {
		e.status = StatusEmpty
		return e
	}
	e.slides = buildTrack(slides)
	e.auto.enabled = e.opts.AutoplayDelay > 0
	e.status = StatusDeferred
	e.initialize()
	return e
}

func buildTrack(slides []Slide) []Rendered {
	out := make([]Rendered, 0, len(slides)+2)
	out = append(out, Rendered{Slide: slides[len(slides)-1], Clone: CloneLast})
	for _, s := range slides {
		out = append(out, Rendered{Slide: s})
	}
	return append(out, Rendered{Slide: slides[0], Clone: CloneFirst})
}

func (e *Engine) initialize() bool {
	m, ok := e.measure()
	if !ok {
		return false
	}
	e.geom = geometryFrom(m)
	e.status = StatusReady
	e.index = 1
	e.phase = PhaseIdle
	e.apply(0)
	e.syncAutoplay()
	return true
}

func (e *Engine) measure() (Metrics, bool) {
	if e.layout == nil {
		return Metrics{}, false
	}
	m, ok := e.layout.Measure()
	if !ok || !validMetrics(m) {
		return Metrics{}, false
	}
	return m, true
}

func validMetrics(m Metrics) bool {
	for _, v := range []float64{m.SlideWidth, m.Gap, m.ViewportWidth} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return m.SlideWidth > 0 && m.ViewportWidth > 0 && m.Gap >= 0
}

// Next advances one slide.
func (e *Engine) Next() { e.shift(1) }

// Prev goes back one slide.
func (e *Engine) Prev() { e.shift(-1) }

// GoTo animates to a logical slide. Out of range indices are clamped.
func (e *Engine) GoTo(logical int) {
	if !e.live() {
		return
	}
	logical = max(0, min(logical, e.n-1))
	e.stopSettle()
	e.reanchor()
	e.navigate(logical + 1)
}

func (e *Engine) shift(delta int) {
	if !e.live() {
		return
	}
	e.stopSettle()
	e.reanchor()
	e.navigate(e.index + delta)
}

// reanchor moves off a clone before a new navigation. The strip content is
// identical either way, so a rebasing track keeps easing from where it is.
func (e *Engine) reanchor() {
	from := e.offsetFor(e.index)
	if !e.correct() {
		return
	}
	if r, ok := e.track.(Rebaser); ok {
		e.offset = e.offsetFor(e.index)
		r.Rebase(e.offset - from)
		return
	}
	e.apply(0)
}

// navigate animates to a rendered index and schedules the settle check.
func (e *Engine) navigate(target int) {
	e.stopSettle()
	e.index = target
	e.phase = PhaseAnimating
	e.apply(e.opts.TransitionDuration)
	e.settle = e.clock.AfterFunc(e.opts.TransitionDuration+e.opts.SettleGuard, e.settleNow)
}

func (e *Engine) settleNow() {
	e.settle = nil
	if e.status != StatusReady {
		return
	}
	if e.correct() {
		e.apply(0)
	}
	e.phase = PhaseIdle
	e.syncAutoplay()
}

// correct moves the index off a clone onto its real counterpart. The caller
// applies the offset.
func (e *Engine) correct() bool {
	switch e.slides[e.index].Clone {
	case CloneLast:
		e.index = e.n
	case CloneFirst:
		e.index = 1
	default:
		return false
	}
	e.phase = PhaseCorrecting
	return true
}

func (e *Engine) stopSettle() {
	if e.settle != nil {
		e.settle.Stop()
		e.settle = nil
	}
}

// Resize re-measures the layout and re-applies the current position instantly.
func (e *Engine) Resize() {
	switch e.status {
	case StatusDeferred:
		e.initialize()
		return
	case StatusReady:
	default:
		return
	}
	m, ok := e.measure()
	if !ok {
		return
	}
	e.geom = geometryFrom(m)
	if e.drag.active {
		e.drag.baseOffset = e.offsetFor(e.index)
		e.setOffset(e.drag.live(), 0)
		return
	}
	e.apply(0)
}

// Destroy stops every timer and clears the track. Later calls are no-ops.
func (e *Engine) Destroy() {
	if e.status == StatusDestroyed {
		return
	}
	e.stopSettle()
	e.stopAutoplayTimer()
	empty := e.status == StatusEmpty
	e.status = StatusDestroyed
	e.drag = dragState{}
	e.phase = PhaseIdle
	if !empty && e.track != nil {
		e.track.Reset()
	}
}

func (e *Engine) live() bool {
	return e.status == StatusReady && !e.drag.active
}

func (e *Engine) offsetFor(index int) float64 {
	return -float64(index)*e.geom.Step + e.geom.SidePadding
}

func (e *Engine) apply(transition time.Duration) {
	e.setOffset(e.offsetFor(e.index), transition)
}

func (e *Engine) setOffset(offset float64, transition time.Duration) {
	e.offset = offset
	e.track.SetOffset(offset, transition)
}

// Index returns the rendered index, 1..N at rest.
func (e *Engine) Index() int { return e.index }

// Logical returns the logical slide currently shown, including while a clone is shown.
func (e *Engine) Logical() int {
	if e.n == 0 {
		return 0
	}
	return (e.index - 1 + e.n) % e.n
}

// Len returns the logical slide count.
func (e *Engine) Len() int { return e.n }

// Offset returns the last offset written to the track.
func (e *Engine) Offset() float64 { return e.offset }

// RestingOffset returns the offset of the current index without drag displacement.
func (e *Engine) RestingOffset() float64 { return e.offsetFor(e.index) }

// Geometry returns the cached geometry.
func (e *Engine) Geometry() Geometry { return e.geom }

// Phase returns the navigation state tag.
func (e *Engine) Phase() Phase { return e.phase }

// Status returns the lifecycle status.
func (e *Engine) Status() Status { return e.status }

// Transition returns the animated transition duration in use.
func (e *Engine) Transition() time.Duration { return e.opts.TransitionDuration }

// Slides returns a copy of the rendered track.
func (e *Engine) Slides() []Rendered {
	if len(e.slides) == 0 {
		return nil
	}
	out := make([]Rendered, len(e.slides))
	copy(out, e.slides)
	return out
}

// Err reports why the engine is not live, or nil.
func (e *Engine) Err() error {
	switch e.status {
	case StatusEmpty:
		return ErrEmptyCollection
	case StatusDeferred:
		return ErrGeometryUnavailable
	case StatusDestroyed:
		return ErrDestroyed
	default:
		return nil
	}
}
