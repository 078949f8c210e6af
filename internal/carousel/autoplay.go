package carousel

type autoplayState struct {
	enabled bool
	hovered bool
	focused bool
	timer   Timer
}

// StartAutoplay enables autoplay. Any live timer is replaced so at most one
// runs. It has no effect when the delay is zero.
func (e *Engine) StartAutoplay() {
	if e.status == StatusEmpty || e.status == StatusDestroyed || e.opts.AutoplayDelay <= 0 {
		return
	}
	e.auto.enabled = true
	e.stopAutoplayTimer()
	e.syncAutoplay()
}

// StopAutoplay disables autoplay until StartAutoplay is called again.
func (e *Engine) StopAutoplay() {
	e.auto.enabled = false
	e.stopAutoplayTimer()
}

// ToggleAutoplay flips autoplay and reports whether it is now enabled.
func (e *Engine) ToggleAutoplay() bool {
	if e.auto.enabled {
		e.StopAutoplay()
	} else {
		e.StartAutoplay()
	}
	return e.auto.enabled
}

// AutoplayEnabled reports whether autoplay is switched on, even if held.
func (e *Engine) AutoplayEnabled() bool { return e.auto.enabled }

// Autoplaying reports whether an autoplay timer is live.
func (e *Engine) Autoplaying() bool { return e.auto.timer != nil }

// PointerEnter holds autoplay while the pointer hovers the carousel.
func (e *Engine) PointerEnter() { e.hold(&e.auto.hovered, true) }

// PointerLeave releases the hover hold.
func (e *Engine) PointerLeave() { e.hold(&e.auto.hovered, false) }

// FocusIn holds autoplay while the carousel has keyboard focus.
func (e *Engine) FocusIn() { e.hold(&e.auto.focused, true) }

// FocusOut releases the focus hold.
func (e *Engine) FocusOut() { e.hold(&e.auto.focused, false) }

func (e *Engine) hold(flag *bool, v bool) {
	if e.status == StatusDestroyed || e.status == StatusEmpty {
		return
	}
	*flag = v
	e.syncAutoplay()
}

func (e *Engine) autoplayAllowed() bool {
	return e.status == StatusReady &&
		e.auto.enabled &&
		e.opts.AutoplayDelay > 0 &&
		!e.auto.hovered &&
		!e.auto.focused &&
		!e.drag.active
}

func (e *Engine) syncAutoplay() {
	if !e.autoplayAllowed() {
		e.stopAutoplayTimer()
		return
	}
	if e.auto.timer == nil {
		e.armAutoplay()
	}
}

func (e *Engine) armAutoplay() {
	e.auto.timer = e.clock.AfterFunc(e.opts.AutoplayDelay, e.autoplayTick)
}

func (e *Engine) autoplayTick() {
	e.auto.timer = nil
	if !e.autoplayAllowed() {
		return
	}
	e.armAutoplay()
	e.shift(1)
}

func (e *Engine) stopAutoplayTimer() {
	if e.auto.timer != nil {
		e.auto.timer.Stop()
		e.auto.timer = nil
	}
}
