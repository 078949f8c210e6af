package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/reel/internal/carousel"
	"github.com/five82/reel/internal/gallery"
)

// Rows a pane occupies besides its track.
const (
	paneTitleRows    = 1
	paneControlsRows = 1
	paneSpacerRows   = 1
)

// pane is one gallery carousel on screen. It is the engine's Layout and owns
// the engine's Track.
type pane struct {
	name        string
	collection  gallery.Collection
	fingerprint uint64

	engine *carousel.Engine
	track  *paneTrack

	viewport   int // track width in cells, zero before the first resize
	gap        int
	size       cardSize
	slideWidth int // measured card width

	thumbs     map[string]thumbnail
	thumbsSize [2]int

	top int // first terminal row, -1 when scrolled out of view
}

func newPane(col gallery.Collection, clock carousel.Clock, opts carousel.Options, now func() time.Time) *pane {
	p := &pane{
		name:        col.Name,
		collection:  col,
		fingerprint: col.Fingerprint(),
		track:       newPaneTrack(now),
		top:         -1,
	}
	p.engine = carousel.New(col.Slides(), p.track, p, clock, opts)
	p.engine.StartAutoplay()
	return p
}

// Measure implements carousel.Layout.
func (p *pane) Measure() (carousel.Metrics, bool) {
	if p.viewport <= 0 || p.slideWidth <= 0 {
		return carousel.Metrics{}, false
	}
	return carousel.Metrics{
		SlideWidth:    float64(p.slideWidth),
		Gap:           float64(p.gap),
		ViewportWidth: float64(p.viewport),
	}, true
}

// resize lays the pane out for a terminal width and re-applies the engine
// position. It reports whether thumbnails need decoding at the new size.
func (p *pane) resize(width, slideWidth, slideHeight, gap int, styles Styles) bool {
	p.viewport = width
	p.gap = max(gap, 0)
	p.size = cardSizeFor(slideWidth, slideHeight, width)
	p.slideWidth = measureCardWidth(styles, p.size)
	p.engine.Resize()
	return p.thumbsSize != [2]int{p.size.Inner, p.size.Image}
}

func (p *pane) setThumbnails(msg thumbnailsMsg) bool {
	if msg.pane != p.name || msg.fingerprint != p.fingerprint {
		return false
	}
	if msg.width != p.size.Inner || msg.height != p.size.Image {
		return false
	}
	p.thumbs = msg.thumbs
	p.thumbsSize = [2]int{msg.width, msg.height}
	return true
}

func (p *pane) destroy() {
	p.engine.Destroy()
}

// height is the number of terminal rows the pane occupies.
func (p *pane) height() int {
	return paneTitleRows + p.trackRows() + paneControlsRows + paneSpacerRows
}

func (p *pane) trackRows() int {
	return max(p.size.Height, minCardHeight)
}

func (p *pane) onTrack(row int) bool {
	return row >= paneTitleRows && row < paneTitleRows+p.trackRows()
}

func (p *pane) onControls(row int) bool {
	return row == paneTitleRows+p.trackRows()
}

// currentImage returns the gallery image shown at the logical index.
func (p *pane) currentImage() (gallery.Image, bool) {
	if p.engine.Len() == 0 {
		return gallery.Image{}, false
	}
	i := p.engine.Logical()
	if i < 0 || i >= len(p.collection.Images) {
		return gallery.Image{}, false
	}
	return p.collection.Images[i], true
}

func (p *pane) title() string {
	if t := strings.TrimSpace(p.collection.Title); t != "" {
		return t
	}
	return p.name
}

// view renders the pane at full width.
func (p *pane) view(styles Styles, focused bool) string {
	rows := make([]string, 0, p.height())
	rows = append(rows, p.viewTitle(styles, focused))
	rows = append(rows, p.viewTrack(styles, focused)...)
	rows = append(rows, p.viewControls(styles))
	rows = append(rows, "")
	return strings.Join(rows, "\n")
}

func (p *pane) viewTitle(styles Styles, focused bool) string {
	titleStyle := styles.GalleryTitle
	marker := "  "
	if focused {
		titleStyle = styles.GalleryTitleFocused
		marker = styles.AccentText.Render("▌ ")
	}
	parts := []string{marker + titleStyle.Render(p.title())}
	if n := p.engine.Len(); n > 0 {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d/%d", p.engine.Logical()+1, n)))
	}
	if p.collection.IsPlaceholder() {
		parts = append(parts, styles.FaintText.Render("placeholders"))
	}
	if p.collection.Err != nil {
		parts = append(parts, styles.DangerText.Render("✗ scan failed"))
	}
	switch {
	case p.engine.Autoplaying():
		parts = append(parts, styles.SuccessText.Render("▶ autoplay"))
	case p.engine.AutoplayEnabled():
		parts = append(parts, styles.WarningText.Render("⏸ paused"))
	}
	return ansi.Truncate(strings.Join(parts, "  "), p.viewport, "…")
}

func (p *pane) viewTrack(styles Styles, focused bool) []string {
	rows := p.trackRows()
	switch p.engine.Status() {
	case carousel.StatusEmpty:
		return p.viewEmpty(styles, rows)
	case carousel.StatusReady:
	default:
		return blankRows(rows, p.viewport)
	}

	geom := p.engine.Geometry()
	offset := p.track.Offset()
	active := p.engine.Logical()
	slides := p.engine.Slides()

	cards := make([]placedCard, 0, 4)
	for i, slide := range slides {
		x := cardX(offset, i, geom.Step)
		if !visible(x, p.slideWidth, p.viewport) {
			continue
		}
		look := lookResting
		if slide.Source == active {
			look = lookActive
			if focused {
				look = lookFocused
			}
		}
		lines := renderCard(styles, slide, p.thumbs[slide.Image], p.size, look)
		cards = append(cards, placedCard{x: x, width: p.slideWidth, lines: lines})
	}
	return composeTrack(cards, p.viewport, rows)
}

func (p *pane) viewEmpty(styles Styles, rows int) []string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		styles.MutedText.Render("No gallery images found"),
		styles.FaintText.Render("add images to "+truncateMiddle(p.collection.Dir, max(p.viewport-16, 8))),
	)
	return strings.Split(lipgloss.Place(p.viewport, rows, lipgloss.Center, lipgloss.Center, msg), "\n")
}

// viewControls renders the previous arrow, pagination dots and next arrow.
func (p *pane) viewControls(styles Styles) string {
	n := p.engine.Len()
	if n == 0 || p.viewport < 8 {
		return ""
	}
	active := p.engine.Logical()
	var middle string
	if dotsFit(n, p.viewport) {
		dots := make([]string, n)
		for i := range dots {
			if i == active {
				dots[i] = styles.DotActive.Render("●")
			} else {
				dots[i] = styles.Dot.Render("○")
			}
		}
		middle = strings.Join(dots, " ")
	} else {
		middle = styles.MutedText.Render(fmt.Sprintf("%d / %d", active+1, n))
	}
	inner := lipgloss.PlaceHorizontal(p.viewport-4, lipgloss.Center, middle)
	return " " + styles.AccentText.Render("‹") + inner + styles.AccentText.Render("›") + " "
}

// controlAt maps a click on the controls row to an action.
func (p *pane) controlAt(x int) (action controlAction, index int) {
	n := p.engine.Len()
	if n == 0 || p.viewport < 8 {
		return controlNone, 0
	}
	switch {
	case x <= 1:
		return controlPrev, 0
	case x >= p.viewport-2:
		return controlNext, 0
	}
	if !dotsFit(n, p.viewport) {
		return controlNone, 0
	}
	dotsWidth := 2*n - 1
	start := 2 + (p.viewport-4-dotsWidth)/2
	rel := x - start
	if rel < 0 || rel >= dotsWidth || rel%2 != 0 {
		return controlNone, 0
	}
	return controlDot, rel / 2
}

type controlAction int

const (
	controlNone controlAction = iota
	controlPrev
	controlNext
	controlDot
)

func dotsFit(n, viewport int) bool {
	return 2*n-1 <= viewport-8
}

func blankRows(n, width int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = strings.Repeat(" ", max(width, 0))
	}
	return rows
}
