package gallery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the optional per-directory manifest file.
const ManifestName = "gallery.yaml"

// Manifest overrides titles and order for a gallery directory.
type Manifest struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Images      []ManifestImage `yaml:"images"`
}

// ManifestImage pins one file. Listed files come first in listed order.
type ManifestImage struct {
	File  string `yaml:"file"`
	Title string `yaml:"title"`
}

// loadManifest returns a zero Manifest when the file does not exist.
func loadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{}, nil
		}
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	m.Title = strings.TrimSpace(m.Title)
	return m, nil
}

func (m Manifest) titleFor(file string) string {
	for _, img := range m.Images {
		if img.File == file {
			return strings.TrimSpace(img.Title)
		}
	}
	return ""
}
