// Package prefs remembers reel's per-user choices between runs: the colour
// theme and the gallery that last had focus. They live in
// ~/.config/reel/prefs.toml, apart from config.toml, because reel rewrites
// them on every exit.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/reel/internal/config"
)

// Prefs is what reel remembers between runs.
type Prefs struct {
	Theme string `toml:"theme"`
	// Focus names the gallery that had keyboard focus.
	Focus string `toml:"focus,omitempty"`
}

const (
	defaultPath  = "~/.config/reel/prefs.toml"
	defaultTheme = "Nightfox"
)

// DefaultPath returns the preferences location used when none is given.
func DefaultPath() string {
	return defaultPath
}

// Defaults returns the preferences of a first run.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads the preferences at path, or at DefaultPath when path is empty.
// A missing, unreadable or malformed file yields Defaults.
func Load(path string) Prefs {
	resolved, err := locate(path)
	if err != nil {
		return Defaults()
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Defaults()
	}
	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults()
	}
	return p.normalized()
}

// Save writes p to path, creating the directory.
func Save(path string, p Prefs) error {
	resolved, err := locate(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.Focus = strings.TrimSpace(p.Focus)
	return p
}

func locate(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPath
	}
	return config.ExpandPath(path)
}
