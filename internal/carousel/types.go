package carousel

import (
	"errors"
	"time"
)

// Defaults applied when Options leave a field at zero.
const (
	DefaultTransition       = 350 * time.Millisecond
	DefaultSettleGuard      = 10 * time.Millisecond
	DefaultMinDragThreshold = 40
	dragThresholdRatio      = 0.25
)

var (
	// ErrEmptyCollection reports an engine built without slides.
	ErrEmptyCollection = errors.New("carousel: no slides")
	// ErrGeometryUnavailable reports that the container could not be measured yet.
	ErrGeometryUnavailable = errors.New("carousel: geometry unavailable")
	// ErrDestroyed reports an engine that has been torn down.
	ErrDestroyed = errors.New("carousel: destroyed")
)

// Slide is one caller-supplied item.
type Slide struct {
	Source int    // stable source index
	Image  string // displayable image reference
	Title  string
}

// Clone tags a rendered entry as a boundary copy.
type Clone int

const (
	CloneNone Clone = iota
	CloneLast       // copy of the last slide, rendered index 0
	CloneFirst      // copy of the first slide, rendered index N+1
)

// Rendered is one entry of the track including clones.
type Rendered struct {
	Slide
	Clone Clone
}

// Phase is the navigation state tag.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAnimating
	PhaseCorrecting
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseAnimating:
		return "animating"
	case PhaseCorrecting:
		return "correcting"
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Status describes whether the engine is live.
type Status int

const (
	StatusReady Status = iota
	StatusEmpty
	StatusDeferred
	StatusDestroyed
)

// Metrics are the raw layout measurements consumed by the engine.
type Metrics struct {
	SlideWidth    float64
	Gap           float64
	ViewportWidth float64
}

// Geometry is derived from Metrics.
type Geometry struct {
	SlideWidth  float64
	Gap         float64
	Step        float64
	SidePadding float64
}

func geometryFrom(m Metrics) Geometry {
	return Geometry{
		SlideWidth:  m.SlideWidth,
		Gap:         m.Gap,
		Step:        m.SlideWidth + m.Gap,
		SidePadding: (m.ViewportWidth - m.SlideWidth) / 2,
	}
}

// Track receives position updates. A zero transition means instant.
type Track interface {
	SetOffset(offset float64, transition time.Duration)
	Reset()
}

// Rebaser is an optional Track extension. Rebase moves the strip, including
// any animation in flight, by delta without visible motion. Engines use it
// to leave a clone mid-animation instead of snapping to an instant offset.
type Rebaser interface {
	Rebase(delta float64)
}

// Layout measures the container. It reports false when nothing is laid out yet.
type Layout interface {
	Measure() (Metrics, bool)
}

// Clock schedules callbacks on the host event loop.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Options tune an Engine.
type Options struct {
	AutoplayDelay      time.Duration // zero disables autoplay
	TransitionDuration time.Duration
	SettleGuard        time.Duration
	DragThreshold      float64 // fixed threshold; zero uses max(MinDragThreshold, 0.25*step)
	MinDragThreshold   float64
}

func (o Options) withDefaults() Options {
	if o.TransitionDuration <= 0 {
		o.TransitionDuration = DefaultTransition
	}
	if o.SettleGuard <= 0 {
		o.SettleGuard = DefaultSettleGuard
	}
	if o.MinDragThreshold <= 0 {
		o.MinDragThreshold = DefaultMinDragThreshold
	}
	if o.AutoplayDelay < 0 {
		o.AutoplayDelay = 0
	}
	return o
}
