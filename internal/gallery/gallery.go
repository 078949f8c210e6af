package gallery

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/five82/reel/internal/carousel"
)

// DefaultPlaceholders is the placeholder count used when a gallery is empty.
const DefaultPlaceholders = 8

var imageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".gif":  {},
	".avif": {},
	".svg":  {},
}

// Image is one discovered gallery entry.
type Image struct {
	Path        string // empty for placeholders
	Filename    string
	Name        string // filename without extension
	Title       string
	Index       int // 1-based display index
	Placeholder bool
	ModTime     time.Time
	Size        int64
}

// Alt returns the accessible label for the image.
func (im Image) Alt() string {
	return fmt.Sprintf("Gallery %02d: %s", im.Index, im.Title)
}

// Collection is one scanned gallery.
type Collection struct {
	Name        string
	Dir         string
	Title       string
	Description string
	Images      []Image
	// Err is the last scan failure. Images then hold the previous set, or
	// placeholders when there was none.
	Err error
}

// Options control Scan and Load.
type Options struct {
	Name         string
	Placeholders int // used by Load when the directory yields nothing
}

// IsPlaceholder reports whether every image is a placeholder.
func (c Collection) IsPlaceholder() bool {
	if len(c.Images) == 0 {
		return false
	}
	for _, im := range c.Images {
		if !im.Placeholder {
			return false
		}
	}
	return true
}

// Slides converts images to carousel slides in order.
func (c Collection) Slides() []carousel.Slide {
	out := make([]carousel.Slide, len(c.Images))
	for i, im := range c.Images {
		ref := im.Path
		if im.Placeholder {
			ref = "placeholder:" + im.Filename
		}
		out[i] = carousel.Slide{Source: i, Image: ref, Title: im.Title}
	}
	return out
}

// Fingerprint identifies the image list. Any change in files, order, titles
// or modification times yields a different value.
func (c Collection) Fingerprint() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s\x00%s\x00", c.Dir, c.Title)
	for _, im := range c.Images {
		fmt.Fprintf(h, "%s\x00%s\x00%d\x00%d\x00%t\x00", im.Filename, im.Title, im.ModTime.UnixNano(), im.Size, im.Placeholder)
	}
	return h.Sum64()
}

// Scan lists the images in dir in natural order, applying gallery.yaml when
// present.
func Scan(dir string, opts Options) (Collection, error) {
	col := Collection{Name: opts.Name, Dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return col, fmt.Errorf("scan gallery %s: %w", dir, err)
	}

	manifest, err := loadManifest(dir)
	if err != nil {
		return col, fmt.Errorf("scan gallery %s: %w", dir, err)
	}
	col.Title = manifest.Title
	col.Description = strings.TrimSpace(manifest.Description)

	byFile := make(map[string]Image)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isImage(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Printf("gallery %s: skip %s: %v", dir, entry.Name(), err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		name := entry.Name()
		byFile[name] = Image{
			Path:     filepath.Join(dir, name),
			Filename: name,
			Name:     strings.TrimSuffix(name, filepath.Ext(name)),
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })

	ordered := make([]string, 0, len(names))
	pinned := make(map[string]bool)
	for _, mi := range manifest.Images {
		if _, ok := byFile[mi.File]; !ok {
			log.Printf("gallery %s: manifest lists missing file %q", dir, mi.File)
			continue
		}
		if pinned[mi.File] {
			continue
		}
		pinned[mi.File] = true
		ordered = append(ordered, mi.File)
	}
	for _, name := range names {
		if !pinned[name] {
			ordered = append(ordered, name)
		}
	}

	col.Images = make([]Image, 0, len(ordered))
	for i, name := range ordered {
		im := byFile[name]
		im.Index = i + 1
		im.Title = manifest.titleFor(name)
		if im.Title == "" {
			im.Title = im.Name
		}
		col.Images = append(col.Images, im)
	}
	return col, nil
}

// Load scans dir and falls back to placeholders when the directory is missing
// or has no images. Other errors are returned.
func Load(dir string, opts Options) (Collection, error) {
	col, err := Scan(dir, opts)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return col, err
	}
	if err != nil {
		log.Printf("gallery %s: directory not found", dir)
	}
	if len(col.Images) == 0 {
		if opts.Placeholders > 0 {
			log.Printf("gallery %s: no images, using %d placeholders", dir, opts.Placeholders)
			col.Images = Placeholders(opts.Placeholders)
		} else {
			log.Printf("gallery %s: no images", dir)
		}
	}
	return col, nil
}

// Placeholders returns n generated stand-in images.
func Placeholders(n int) []Image {
	out := make([]Image, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		out = append(out, Image{
			Filename:    fmt.Sprintf("placeholder-%d.jpg", i),
			Name:        fmt.Sprintf("Gallery Image %02d", i),
			Title:       fmt.Sprintf("Gallery Image %02d", i),
			Index:       i,
			Placeholder: true,
		})
	}
	return out
}

func isImage(name string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(name))]
	return ok
}
