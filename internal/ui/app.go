package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/carousel"
	"github.com/five82/reel/internal/config"
	"github.com/five82/reel/internal/gallery"
	"github.com/five82/reel/internal/prefs"
	"github.com/five82/reel/internal/state"
)

// overlay is the modal drawn over the galleries.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayLogs
	overlayAbout
)

const (
	headerRows = 1
	footerRows = 1

	defaultPollTick = time.Second
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Config    *config.Config
	PollTick  time.Duration
	ThemeName string
	Focus     string // gallery to focus once it appears
	PrefsPath string
	LogPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	config    config.Config
	prefsPath string
	logPath   string
	pollTick  time.Duration
	now       func() time.Time

	// UI state
	theme   Theme
	keys    keyMap
	help    help.Model
	width   int
	height  int
	ready   bool
	overlay overlay

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Carousels
	clock     *loopClock
	panes     []*pane
	focus     *pane
	hover     *pane
	drag      *pane
	restore   string // gallery name to focus when it appears
	blurred   bool   // terminal lost focus
	scroll    int    // index of the first visible pane
	animating bool   // a frame tick is in flight

	// Overlays
	logViewport viewport.Model
	logLines    []string
	aboutView   viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = defaultPollTick
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		config:    cfg,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		pollTick:  pollTick,
		now:       time.Now,
		theme:     GetTheme(opts.ThemeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		clock:     newLoopClock(),
		restore:   strings.TrimSpace(opts.Focus),
	}
	m.applyHelpStyles()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model. Engine timers scheduled while handling msg
// are flushed to the runtime, and a frame tick is started when a track
// begins to move.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	cmds := []tea.Cmd{cmd, next.clock.drain()}
	if !next.animating && next.anyMoving() {
		next.animating = true
		cmds = append(cmds, frameCmd())
	}
	return next, tea.Batch(cmds...)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg.Width, msg.Height)

	case tea.FocusMsg:
		if m.blurred && m.focus != nil {
			m.focus.engine.FocusIn()
		}
		m.blurred = false
		return m, nil

	case tea.BlurMsg:
		m.releaseDrag()
		m.setHover(nil)
		if !m.blurred && m.focus != nil {
			m.focus.engine.FocusOut()
		}
		m.blurred = true
		return m, nil

	case timerMsg:
		m.clock.fire(msg.id)
		return m, nil

	case frameMsg:
		now := m.now()
		for _, p := range m.panes {
			p.track.advance(now)
		}
		m.animating = false
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = m.now()
		return m, m.syncPanes(m.snapshot.Galleries)

	case thumbnailsMsg:
		for _, p := range m.panes {
			if p.setThumbnails(msg) {
				break
			}
		}
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayLogs:
		return m.renderLogs()
	case overlayAbout:
		return m.renderAbout()
	}

	return m.renderMain()
}

func (m Model) handleResize(width, height int) (Model, tea.Cmd) {
	m.width, m.height = width, height
	if !m.ready {
		m.initOverlays()
	}
	m.ready = true
	m.resizeOverlays()

	var cmds []tea.Cmd
	for _, p := range m.panes {
		cmds = append(cmds, m.resizePane(p))
	}
	m.relayout()
	return m, tea.Batch(cmds...)
}

// resizePane lays a pane out and returns the thumbnail load it needs.
func (m Model) resizePane(p *pane) tea.Cmd {
	if m.width <= 0 {
		return nil
	}
	styles := m.theme.Styles()
	if p.resize(m.width, m.config.SlideWidth, m.config.SlideHeight, m.config.Gap, styles) {
		return loadThumbnailsCmd(p.collection, p.size.Inner, p.size.Image)
	}
	return nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.overlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyHelpStyles()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.overlay = overlayLogs
		return m, loadLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.About):
		m.overlay = overlayAbout
		m.refreshAbout()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.cycleFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.setFocus(nil)
		return m, nil
	}

	p := m.target()
	if p == nil {
		return m, nil
	}
	e := p.engine
	switch {
	case key.Matches(msg, m.keys.Prev):
		e.Prev()
	case key.Matches(msg, m.keys.Next):
		e.Next()
	case key.Matches(msg, m.keys.First):
		e.GoTo(0)
	case key.Matches(msg, m.keys.Last):
		e.GoTo(e.Len() - 1)
	case key.Matches(msg, m.keys.Jump):
		e.GoTo(int(msg.String()[0]-'1'))
	case key.Matches(msg, m.keys.Autoplay):
		e.ToggleAutoplay()
	}
	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.overlay = overlayNone
		return m, nil
	}

	switch m.overlay {
	case overlayLogs:
		if key.Matches(msg, m.keys.Logs) {
			m.overlay = overlayNone
			return m, nil
		}
		return m.handleLogsKey(msg)
	case overlayAbout:
		if key.Matches(msg, m.keys.About) {
			m.overlay = overlayNone
			return m, nil
		}
		var cmd tea.Cmd
		m.aboutView, cmd = m.aboutView.Update(msg)
		return m, cmd
	default:
		// Any key closes help
		m.overlay = overlayNone
		return m, nil
	}
}

// handleTick processes the polling tick.
func (m Model) handleTick() (Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.overlay == overlayLogs {
		cmds = append(cmds, loadLogsCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

// syncPanes rebuilds carousels whose gallery content changed. Untouched
// galleries keep their engine, position and timers.
func (m *Model) syncPanes(cols []gallery.Collection) tea.Cmd {
	existing := make(map[string]*pane, len(m.panes))
	for _, p := range m.panes {
		existing[p.name] = p
	}

	focusName, hoverName := paneName(m.focus), paneName(m.hover)
	if focusName == "" {
		focusName = m.restore
	}

	var cmds []tea.Cmd
	next := make([]*pane, 0, len(cols))
	for _, col := range cols {
		if p, ok := existing[col.Name]; ok {
			delete(existing, col.Name)
			if p.fingerprint == col.Fingerprint() {
				p.collection = col
				next = append(next, p)
				continue
			}
			log.Printf("gallery %s changed, rebuilding carousel", col.Name)
			m.dropPane(p)
		}
		p := newPane(col, m.clock, m.engineOptions(col.Name), m.now)
		cmds = append(cmds, m.resizePane(p))
		next = append(next, p)
	}
	for _, p := range existing {
		m.dropPane(p)
	}
	m.panes = next

	if m.focus == nil && focusName != "" {
		if p := m.paneNamed(focusName); p != nil {
			m.setFocus(p)
			m.restore = ""
		}
	}
	if m.hover == nil && hoverName != "" {
		m.setHover(m.paneNamed(hoverName))
	}
	m.scroll = min(m.scroll, max(len(m.panes)-1, 0))
	m.relayout()
	return tea.Batch(cmds...)
}

// dropPane destroys a pane and forgets every reference to it.
func (m *Model) dropPane(p *pane) {
	p.destroy()
	if m.focus == p {
		m.focus = nil
	}
	if m.hover == p {
		m.hover = nil
	}
	if m.drag == p {
		m.drag = nil
	}
}

func (m Model) engineOptions(name string) carousel.Options {
	opts := carousel.Options{
		TransitionDuration: m.config.Transition,
		DragThreshold:      m.config.DragThreshold,
		MinDragThreshold:   m.config.DragMinThreshold,
	}
	for _, g := range m.config.Galleries {
		if g.Name == name {
			opts.AutoplayDelay = g.Autoplay()
			break
		}
	}
	return opts
}

// setFocus moves keyboard focus, pausing autoplay on the focused gallery.
func (m *Model) setFocus(p *pane) {
	if m.focus == p {
		return
	}
	if m.focus != nil && !m.blurred {
		m.focus.engine.FocusOut()
	}
	m.focus = p
	if p != nil {
		if !m.blurred {
			p.engine.FocusIn()
		}
		m.scrollTo(p)
	}
}

// setHover tracks which gallery the pointer is over.
func (m *Model) setHover(p *pane) {
	if m.hover == p {
		return
	}
	if m.hover != nil {
		m.hover.engine.PointerLeave()
	}
	m.hover = p
	if p != nil {
		p.engine.PointerEnter()
	}
}

// cycleFocus walks galleries in order with an unfocused stop after the last.
func (m *Model) cycleFocus(dir int) {
	n := len(m.panes)
	if n == 0 {
		return
	}
	cur := m.indexOf(m.focus) // -1 when nothing is focused
	next := (cur + 1 + dir + n + 1) % (n + 1)
	if next == 0 {
		m.setFocus(nil)
		return
	}
	m.setFocus(m.panes[next-1])
}

// moveFocus focuses the gallery above or below, clamping at the ends.
func (m *Model) moveFocus(dir int) {
	n := len(m.panes)
	if n == 0 {
		return
	}
	cur := m.indexOf(m.focus)
	if cur < 0 {
		cur = m.indexOf(m.target())
		if dir > 0 {
			cur--
		} else {
			cur++
		}
	}
	m.setFocus(m.panes[max(0, min(cur+dir, n-1))])
}

// target is the gallery that receives carousel keys: the focused one, else
// the hovered one, else the first.
func (m Model) target() *pane {
	switch {
	case m.focus != nil:
		return m.focus
	case m.hover != nil:
		return m.hover
	case len(m.panes) > 0:
		return m.panes[0]
	default:
		return nil
	}
}

func (m Model) indexOf(p *pane) int {
	for i, q := range m.panes {
		if q == p {
			return i
		}
	}
	return -1
}

func (m Model) paneNamed(name string) *pane {
	for _, p := range m.panes {
		if p.name == name {
			return p
		}
	}
	return nil
}

func paneName(p *pane) string {
	if p == nil {
		return ""
	}
	return p.name
}

func (m Model) anyMoving() bool {
	for _, p := range m.panes {
		if p.track.Moving() {
			return true
		}
	}
	return false
}

// relayout assigns terminal rows to panes from the scroll position down.
func (m *Model) relayout() {
	y := headerRows
	bottom := m.height - footerRows
	full := false
	for i, p := range m.panes {
		if i < m.scroll || full {
			p.top = -1
			continue
		}
		if y+p.height() > bottom && y > headerRows {
			full = true
			p.top = -1
			continue
		}
		p.top = y
		y += p.height()
	}
}

// scrollTo brings p into view.
func (m *Model) scrollTo(p *pane) {
	idx := m.indexOf(p)
	if idx < 0 {
		return
	}
	if idx < m.scroll {
		m.scroll = idx
	}
	m.relayout()
	for p.top < 0 && m.scroll < idx {
		m.scroll++
		m.relayout()
	}
}

func (m *Model) scrollBy(delta int) {
	m.scroll = max(0, min(m.scroll+delta, len(m.panes)-1))
	m.relayout()
}

// paneAt returns the visible pane covering terminal row y.
func (m Model) paneAt(y int) *pane {
	for _, p := range m.panes {
		if p.top >= 0 && y >= p.top && y < p.top+p.height() {
			return p
		}
	}
	return nil
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Focus: paneName(m.focus)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// shutdown persists prefs and tears down every carousel.
func (m Model) shutdown() {
	m.savePrefs()
	for _, p := range m.panes {
		p.destroy()
	}
}

func (m *Model) applyHelpStyles() {
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
	m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
}

// renderMain renders the header, the visible galleries and the footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	bodyHeight := max(m.height-headerRows-footerRows, 0)
	b.WriteString(lipgloss.NewStyle().
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(m.renderGalleries()))
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderGalleries() string {
	styles := m.theme.Styles()
	if len(m.panes) == 0 {
		msg := styles.MutedText.Render("Scanning galleries...")
		if m.snapshot.HasData {
			msg = styles.MutedText.Render("No galleries configured")
		}
		return lipgloss.Place(m.width, max(m.height-headerRows-footerRows, 1), lipgloss.Center, lipgloss.Center, msg)
	}
	views := make([]string, 0, len(m.panes))
	for _, p := range m.panes {
		if p.top < 0 {
			continue
		}
		views = append(views, p.view(styles, p == m.focus))
	}
	return strings.Join(views, "\n")
}

// Messages

type tickMsg time.Time

type frameMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-m.ctx.Done():
			p.Quit()
		case <-done:
		}
	}()

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.shutdown()
	}
	return err
}
