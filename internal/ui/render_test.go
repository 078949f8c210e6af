package ui

import (
	"image"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/reel/internal/carousel"
	"github.com/five82/reel/internal/gallery"
)

func TestCardSizeFor(t *testing.T) {
	tests := []struct {
		name                string
		width, height, view int
		want                cardSize
	}{
		{name: "fits", width: 30, height: 14, view: 120, want: cardSize{Width: 30, Height: 14, Inner: 28, Image: 11}},
		{name: "narrow viewport", width: 30, height: 14, view: 20, want: cardSize{Width: 18, Height: 14, Inner: 16, Image: 11}},
		{name: "clamped", width: 2, height: 1, view: 0, want: cardSize{Width: minCardWidth, Height: minCardHeight, Inner: 6, Image: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cardSizeFor(tt.width, tt.height, tt.view))
		})
	}
}

func TestComposeTrack_CutsAtEdges(t *testing.T) {
	cards := []placedCard{
		{x: -2, width: 5, lines: []string{"abcde"}},
		{x: 4, width: 3, lines: []string{"xyz"}},
		{x: 9, width: 3, lines: []string{"off"}},
	}
	rows := composeTrack(cards, 8, 1)
	require.Len(t, rows, 1)
	assert.Equal(t, "cde xyz ", rows[0])
}

func TestComposeTrack_PadsMissingRows(t *testing.T) {
	rows := composeTrack([]placedCard{{x: 0, width: 2, lines: []string{"ab"}}}, 4, 2)
	assert.Equal(t, []string{"ab  ", "    "}, rows)
}

func TestCardX(t *testing.T) {
	assert.Equal(t, 8, cardX(8, 0, 22))
	assert.Equal(t, 30, cardX(8, 1, 22))
	assert.Equal(t, -13, cardX(8.6, -1, 22))
	assert.True(t, visible(-19, 20, 80))
	assert.False(t, visible(-20, 20, 80))
	assert.False(t, visible(80, 20, 80))
}

func TestRenderCard_FixedSize(t *testing.T) {
	size := cardSizeFor(20, 8, 80)
	slide := carousel.Rendered{Slide: carousel.Slide{Title: "A very long caption that overflows"}}

	lines := renderCard(GetTheme("Nightfox").Styles(), slide, nil, size, lookFocused)
	require.Len(t, lines, size.Height)
	for _, l := range lines {
		assert.Equal(t, size.Width, ansi.StringWidth(l))
	}
	assert.Equal(t, size.Width, measureCardWidth(GetTheme("Nightfox").Styles(), size))
}

func TestRenderCard_CloneMatchesOriginal(t *testing.T) {
	styles := GetTheme("Slate").Styles()
	size := cardSizeFor(20, 8, 80)
	s := carousel.Slide{Source: 0, Image: "a.png", Title: "First"}

	orig := renderCard(styles, carousel.Rendered{Slide: s}, nil, size, lookActive)
	clone := renderCard(styles, carousel.Rendered{Slide: s, Clone: carousel.CloneFirst}, nil, size, lookActive)
	assert.Equal(t, orig, clone)
}

func TestTruncateCells(t *testing.T) {
	assert.Equal(t, "Gallery…", truncateCells("Gallery Image 01", 8))
	assert.Equal(t, "short", truncateCells("  short ", 8))
	assert.Equal(t, "", truncateCells("x", 0))

	got := truncateMiddle("/home/user/Pictures/festival", 12)
	assert.Equal(t, 12, ansi.StringWidth(got))
	assert.True(t, strings.HasPrefix(got, "/home"))
	assert.True(t, strings.HasSuffix(got, "tival"))
}

func TestCoverRect(t *testing.T) {
	assert.Equal(t, image.Rect(25, 0, 75, 50), coverRect(image.Rect(0, 0, 100, 50), 10, 10))
	assert.Equal(t, image.Rect(0, 25, 50, 75), coverRect(image.Rect(0, 0, 50, 100), 10, 10))
	assert.Equal(t, image.Rect(0, 0, 0, 0), coverRect(image.Rect(0, 0, 0, 0), 10, 10))
}

func TestThumbnailFor_Placeholder(t *testing.T) {
	im := gallery.Placeholders(1)[0]
	thumb := thumbnailFor(im, 12, 5)

	require.Len(t, thumb, 5)
	for _, row := range thumb {
		assert.Equal(t, 12, ansi.StringWidth(row))
	}
}

func TestThumbnailFor_UndecodableShowsExtension(t *testing.T) {
	im := gallery.Image{Path: "/nope/missing.svg", Filename: "missing.svg"}
	thumb := thumbnailFor(im, 10, 3)

	require.Len(t, thumb, 3)
	assert.Contains(t, thumb[1], "SVG")
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.5 KiB", humanBytes(1536))
	assert.Equal(t, "2.0 MiB", humanBytes(2*1024*1024))
}
