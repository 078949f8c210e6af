package ui

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/five82/reel/internal/gallery"
)

// upperHalf draws two vertical pixels per cell: foreground on top,
// background below.
const upperHalf = "▀"

// thumbnail is a rendered image preview, one string per terminal row.
type thumbnail []string

// thumbnailsMsg carries previews decoded off the event loop.
type thumbnailsMsg struct {
	pane        string
	fingerprint uint64
	width       int
	height      int
	thumbs      map[string]thumbnail
}

// loadThumbnailsCmd decodes every image of a collection at width x height
// cells. Results are keyed by slide image reference.
func loadThumbnailsCmd(col gallery.Collection, width, height int) tea.Cmd {
	if width <= 0 || height <= 0 || len(col.Images) == 0 {
		return nil
	}
	name, fp := col.Name, col.Fingerprint()
	slides := col.Slides()
	images := append([]gallery.Image(nil), col.Images...)
	return func() tea.Msg {
		thumbs := make(map[string]thumbnail, len(images))
		for i, im := range images {
			thumbs[slides[i].Image] = thumbnailFor(im, width, height)
		}
		return thumbnailsMsg{pane: name, fingerprint: fp, width: width, height: height, thumbs: thumbs}
	}
}

func thumbnailFor(im gallery.Image, width, height int) thumbnail {
	if im.Placeholder {
		return renderThumbnail(placeholderArt(im.Index, width, height*2), width, height)
	}
	img, err := decodeImage(im.Path)
	if err != nil {
		return labelThumbnail(strings.ToUpper(strings.TrimPrefix(filepath.Ext(im.Filename), ".")), width, height)
	}
	return renderThumbnail(img, width, height)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// renderThumbnail scales img to cover width x 2*height pixels, cropping the
// overflow around the center.
func renderThumbnail(img image.Image, width, height int) thumbnail {
	dst := image.NewRGBA(image.Rect(0, 0, width, height*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, coverRect(img.Bounds(), width, height*2), draw.Src, nil)

	rows := make(thumbnail, height)
	for y := range height {
		var b strings.Builder
		for x := range width {
			top, bottom := dst.RGBAAt(x, 2*y), dst.RGBAAt(x, 2*y+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom)).
				Render(upperHalf))
		}
		rows[y] = b.String()
	}
	return rows
}

// coverRect returns the centered part of src with the aspect ratio of w x h.
func coverRect(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 || w <= 0 || h <= 0 {
		return src
	}
	if sw*h > sh*w {
		cw := sh * w / h
		x0 := src.Min.X + (sw-cw)/2
		return image.Rect(x0, src.Min.Y, x0+cw, src.Max.Y)
	}
	ch := sw * h / w
	y0 := src.Min.Y + (sh-ch)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+ch)
}

// placeholderArt is a grayscale diagonal gradient. Odd and even entries run
// in opposite directions so neighbors are distinguishable.
func placeholderArt(index, w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	span := max(w+h-2, 1)
	for y := range h {
		for x := range w {
			d := x + y
			if index%2 == 0 {
				d = span - d
			}
			v := 48 + 120*d/span
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

// labelThumbnail stands in for images the terminal cannot decode.
func labelThumbnail(label string, width, height int) thumbnail {
	rows := make(thumbnail, height)
	blank := strings.Repeat(" ", width)
	for i := range rows {
		rows[i] = blank
	}
	if label == "" {
		label = "?"
	}
	rows[height/2] = lipgloss.PlaceHorizontal(width, lipgloss.Center, truncateCells(label, width))
	return rows
}

// loadingThumbnail fills the image area until decoding finishes.
func loadingThumbnail(width, height int, style lipgloss.Style) thumbnail {
	rows := make(thumbnail, height)
	fill := style.Render(strings.Repeat("░", width))
	for i := range rows {
		rows[i] = fill
	}
	return rows
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
