package ui

import (
	"math"
	"time"
)

// frameInterval paces track animation, roughly 60 frames per second.
const frameInterval = 16 * time.Millisecond

// paneTrack is the terminal rendition of the sliding strip. It receives the
// engine's target offsets and eases the displayed offset toward them.
type paneTrack struct {
	now func() time.Time

	current  float64
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	moving   bool
	resets   int
}

func newPaneTrack(now func() time.Time) *paneTrack {
	if now == nil {
		now = time.Now
	}
	return &paneTrack{now: now}
}

// SetOffset implements carousel.Track.
func (t *paneTrack) SetOffset(offset float64, transition time.Duration) {
	t.to = offset
	if transition <= 0 {
		t.current = offset
		t.moving = false
		return
	}
	t.from = t.current
	t.start = t.now()
	t.duration = transition
	t.moving = true
}

// Rebase implements carousel.Rebaser.
func (t *paneTrack) Rebase(delta float64) {
	t.current += delta
	t.from += delta
	t.to += delta
}

// Reset implements carousel.Track.
func (t *paneTrack) Reset() {
	t.current, t.from, t.to = 0, 0, 0
	t.moving = false
	t.resets++
}

// advance moves the displayed offset to its position at now and reports
// whether the animation is still running.
func (t *paneTrack) advance(now time.Time) bool {
	if !t.moving {
		return false
	}
	p := float64(now.Sub(t.start)) / float64(t.duration)
	if p >= 1 {
		t.current = t.to
		t.moving = false
		return false
	}
	t.current = t.from + (t.to-t.from)*easeOutCubic(max(p, 0))
	return true
}

// Offset returns the displayed offset in cells.
func (t *paneTrack) Offset() float64 { return t.current }

// Moving reports an animation in flight.
func (t *paneTrack) Moving() bool { return t.moving }

func easeOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}
