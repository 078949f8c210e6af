package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/five82/reel/internal/carousel"
)

// Card sizing in terminal cells.
const (
	minCardWidth  = 8
	minCardHeight = 4
	cardChrome    = 2 // border columns or rows
	captionRows   = 1
)

// cardSize describes one slide card.
type cardSize struct {
	Width  int // outer width including border
	Height int // outer height including border
	Inner  int // content width
	Image  int // thumbnail rows
}

// cardSizeFor fits the configured slide size into a viewport, keeping one
// column of the neighbors visible on each side when possible.
func cardSizeFor(slideWidth, slideHeight, viewport int) cardSize {
	w := slideWidth
	if viewport > 0 {
		w = min(w, viewport-2)
	}
	w = max(w, minCardWidth)
	h := max(slideHeight, minCardHeight)
	return cardSize{
		Width:  w,
		Height: h,
		Inner:  w - cardChrome,
		Image:  max(h-cardChrome-captionRows, 1),
	}
}

// cardLook selects the styling of one card.
type cardLook int

const (
	lookResting cardLook = iota
	lookActive
	lookFocused
)

// renderCard draws a slide: thumbnail above a one-line caption.
func renderCard(styles Styles, slide carousel.Rendered, thumb thumbnail, size cardSize, look cardLook) []string {
	frame, caption := styles.Card, styles.Caption
	switch look {
	case lookActive:
		frame, caption = styles.CardActive, styles.CaptionActive
	case lookFocused:
		frame, caption = styles.CardFocused, styles.CaptionActive
	}
	if len(thumb) < size.Image {
		thumb = loadingThumbnail(size.Inner, size.Image, styles.FaintText)
	}

	var b strings.Builder
	for _, row := range thumb[:size.Image] {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	title := caption.Render(truncateCells(slide.Title, size.Inner))
	b.WriteString(lipgloss.PlaceHorizontal(size.Inner, lipgloss.Center, title))

	out := frame.Width(size.Inner).Render(b.String())
	return strings.Split(out, "\n")
}

// measureCardWidth returns the rendered width of a card frame.
func measureCardWidth(styles Styles, size cardSize) int {
	return lipgloss.Width(styles.Card.Width(size.Inner).Render(""))
}

// placedCard is a rendered card at a horizontal cell position.
type placedCard struct {
	x     int
	width int
	lines []string
}

// cardX returns the left edge of rendered entry i for a track offset.
func cardX(offset float64, i int, step float64) int {
	return int(math.Round(offset + float64(i)*step))
}

// visible reports whether [x, x+w) intersects [0, viewport).
func visible(x, w, viewport int) bool {
	return x+w > 0 && x < viewport
}

// composeTrack lays cards onto rows of the given width. Cards must be sorted
// by x and not overlap; parts outside the viewport are cut.
func composeTrack(cards []placedCard, width, height int) []string {
	rows := make([]string, height)
	for row := range height {
		var b strings.Builder
		cursor := 0
		for _, c := range cards {
			left, right := c.x, c.x+c.width
			if right <= cursor || left >= width || row >= len(c.lines) {
				continue
			}
			visL, visR := max(left, cursor), min(right, width)
			if visL > cursor {
				b.WriteString(strings.Repeat(" ", visL-cursor))
			}
			b.WriteString(ansi.Cut(c.lines[row], visL-left, visR-left))
			cursor = visR
		}
		if cursor < width {
			b.WriteString(strings.Repeat(" ", width-cursor))
		}
		rows[row] = b.String()
	}
	return rows
}

// truncateCells shortens s to fit width display cells.
func truncateCells(s string, width int) string {
	s = strings.TrimSpace(s)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// truncateMiddle shortens a path by removing characters from the middle.
func truncateMiddle(s string, width int) string {
	if runewidth.StringWidth(s) <= width || width < 5 {
		return truncateCells(s, width)
	}
	runes := []rune(s)
	keep := width - 1
	head := keep / 2
	tail := keep - head
	for runewidth.StringWidth(string(runes[:head]))+runewidth.StringWidth(string(runes[len(runes)-tail:])) > keep && head > 0 {
		head--
	}
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}
