package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/carousel"
)

// timerMsg delivers a loopClock callback on the Bubble Tea loop.
type timerMsg struct{ id uint64 }

// loopClock runs engine timers as tea.Tick commands so callbacks execute
// inside Update, never concurrently with it. Scheduled commands are collected
// and handed to the runtime by drain after each message.
type loopClock struct {
	next    uint64
	pending map[uint64]func()
	cmds    []tea.Cmd
}

func newLoopClock() *loopClock {
	return &loopClock{pending: make(map[uint64]func())}
}

// AfterFunc implements carousel.Clock.
func (c *loopClock) AfterFunc(d time.Duration, f func()) carousel.Timer {
	c.next++
	id := c.next
	c.pending[id] = f
	c.cmds = append(c.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return loopTimer{clock: c, id: id}
}

// fire runs the callback for id unless it was stopped.
func (c *loopClock) fire(id uint64) bool {
	f, ok := c.pending[id]
	if !ok {
		return false
	}
	delete(c.pending, id)
	f()
	return true
}

// drain returns the ticks scheduled since the last drain.
func (c *loopClock) drain() tea.Cmd {
	if len(c.cmds) == 0 {
		return nil
	}
	cmds := c.cmds
	c.cmds = nil
	return tea.Batch(cmds...)
}

// Pending reports callbacks that are scheduled and not stopped.
func (c *loopClock) Pending() int { return len(c.pending) }

type loopTimer struct {
	clock *loopClock
	id    uint64
}

// Stop cancels the callback. The tick still arrives and is ignored.
func (t loopTimer) Stop() bool {
	if _, ok := t.clock.pending[t.id]; !ok {
		return false
	}
	delete(t.clock.pending, t.id)
	return true
}
