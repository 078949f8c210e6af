package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse routes pointer input. Hover follows every event; a left press
// on a track starts a drag that continues until release, wherever the
// pointer goes.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.overlay != overlayNone {
		return m.handleOverlayMouse(msg)
	}

	p := m.paneAt(msg.Y)
	m.setHover(p)

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.drag != nil {
			m.drag.engine.DragMove(float64(msg.X))
		}

	case tea.MouseActionRelease:
		m.releaseDrag()

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			// A press while dragging means the release was lost.
			m.releaseDrag()
			if p != nil {
				m.press(p, msg.X, msg.Y-p.top)
			}
		case tea.MouseButtonWheelLeft:
			if p != nil {
				p.engine.Prev()
			}
		case tea.MouseButtonWheelRight:
			if p != nil {
				p.engine.Next()
			}
		case tea.MouseButtonWheelUp:
			m.scrollBy(-1)
		case tea.MouseButtonWheelDown:
			m.scrollBy(1)
		}
	}
	return m, nil
}

// press handles a left click at column x, row within the pane.
func (m *Model) press(p *pane, x, row int) {
	switch {
	case p.onTrack(row):
		p.engine.DragStart(float64(x))
		if p.engine.Dragging() {
			m.drag = p
		}
	case p.onControls(row):
		action, index := p.controlAt(x)
		switch action {
		case controlPrev:
			p.engine.Prev()
		case controlNext:
			p.engine.Next()
		case controlDot:
			p.engine.GoTo(index)
		}
	}
}

// releaseDrag ends the drag in progress, if any.
func (m *Model) releaseDrag() {
	if m.drag == nil {
		return
	}
	m.drag.engine.DragEnd()
	m.drag = nil
}

func (m Model) handleOverlayMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.overlay {
	case overlayLogs:
		m.logViewport, cmd = m.logViewport.Update(msg)
	case overlayAbout:
		m.aboutView, cmd = m.aboutView.Update(msg)
	}
	return m, cmd
}
