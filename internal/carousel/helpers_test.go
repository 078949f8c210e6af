package carousel

import (
	"sort"
	"time"
)

// manualClock fires timers synchronously as time is advanced.
type manualClock struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	due     time.Duration
	seq     int
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.clock.remove(t)
	return true
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.seq++
	t := &manualTimer{clock: c, due: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) remove(t *manualTimer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// Advance moves time forward, firing due timers in order, including timers
// scheduled by callbacks within the window.
func (c *manualClock) Advance(d time.Duration) {
	end := c.now + d
	for {
		sort.SliceStable(c.timers, func(i, j int) bool {
			if c.timers[i].due == c.timers[j].due {
				return c.timers[i].seq < c.timers[j].seq
			}
			return c.timers[i].due < c.timers[j].due
		})
		if len(c.timers) == 0 || c.timers[0].due > end {
			break
		}
		t := c.timers[0]
		c.timers = c.timers[1:]
		t.stopped = true
		c.now = t.due
		t.f()
	}
	c.now = end
}

func (c *manualClock) Pending() int { return len(c.timers) }

type offsetWrite struct {
	offset     float64
	transition time.Duration
	phase      Phase
}

// recordingTrack keeps every write. engine is set after New so later writes
// capture the phase.
type recordingTrack struct {
	engine *Engine
	writes []offsetWrite
	resets int
}

func (r *recordingTrack) SetOffset(offset float64, transition time.Duration) {
	w := offsetWrite{offset: offset, transition: transition}
	if r.engine != nil {
		w.phase = r.engine.Phase()
	}
	r.writes = append(r.writes, w)
}

func (r *recordingTrack) Reset() { r.resets++ }

func (r *recordingTrack) last() offsetWrite {
	if len(r.writes) == 0 {
		return offsetWrite{}
	}
	return r.writes[len(r.writes)-1]
}

// rebasingTrack records Rebase calls on top of the writes.
type rebasingTrack struct {
	recordingTrack
	rebases []float64
}

func (r *rebasingTrack) Rebase(delta float64) { r.rebases = append(r.rebases, delta) }

type fixedLayout struct {
	metrics Metrics
	ok      bool
}

func (l *fixedLayout) Measure() (Metrics, bool) { return l.metrics, l.ok }

// Slide 100 wide, gap 20, viewport 300: step 120, side padding 100.
func defaultLayout() *fixedLayout {
	return &fixedLayout{metrics: Metrics{SlideWidth: 100, Gap: 20, ViewportWidth: 300}, ok: true}
}

func makeSlides(n int) []Slide {
	out := make([]Slide, n)
	for i := range out {
		out[i] = Slide{Source: i, Image: string(rune('a' + i))}
	}
	return out
}

type fixture struct {
	engine *Engine
	track  *recordingTrack
	layout *fixedLayout
	clock  *manualClock
}

func newFixture(n int, opts Options) fixture {
	f := fixture{track: &recordingTrack{}, layout: defaultLayout(), clock: &manualClock{}}
	f.engine = New(makeSlides(n), f.track, f.layout, f.clock, opts)
	f.track.engine = f.engine
	return f
}

// settle advances past one transition plus guard.
func (f fixture) settle() {
	f.clock.Advance(DefaultTransition + DefaultSettleGuard)
}
