package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/config"
	"github.com/five82/reel/internal/gallery"
	"github.com/five82/reel/internal/prefs"
	"github.com/five82/reel/internal/state"
	"github.com/five82/reel/internal/ui"
)

// Options configure the reel application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/reel/prefs.toml
	Dir        string // overrides configured galleries with a single directory
	AutoplayMs int    // overrides autoplay for every gallery when >= 0
}

// Run boots the reel TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err = applyOverrides(cfg, opts)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	userPrefs := prefs.Load(opts.PrefsPath)
	store := &state.Store{}
	scan := scanner(cfg)

	// Initial scan so the UI starts with slides.
	_ = refresh(store, scan)

	if cfg.RescanEvery > 0 {
		StartPoller(ctx, store, scan, cfg.RescanEvery)
	}

	log.Printf("reel starting with %d galleries", len(cfg.Galleries))
	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Config:    &cfg,
		ThemeName: userPrefs.Theme,
		Focus:     userPrefs.Focus,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogFile,
	})
}

func applyOverrides(cfg config.Config, opts Options) (config.Config, error) {
	if opts.Dir != "" {
		dir, err := config.ExpandPath(opts.Dir)
		if err != nil {
			return cfg, fmt.Errorf("gallery dir: %w", err)
		}
		cfg.Galleries = []config.Gallery{{Name: filepath.Base(dir), Dir: dir}}
	}
	if opts.AutoplayMs >= 0 {
		for i := range cfg.Galleries {
			cfg.Galleries[i].AutoplayMs = opts.AutoplayMs
		}
	}
	return cfg, nil
}

// scanner loads every configured gallery. A failing gallery is still listed,
// carrying its error and placeholder images, so the others keep showing.
func scanner(cfg config.Config) scanFunc {
	galleries := append([]config.Gallery(nil), cfg.Galleries...)
	placeholders := cfg.Placeholders
	return func() ([]gallery.Collection, error) {
		out := make([]gallery.Collection, 0, len(galleries))
		var errs []error
		for _, g := range galleries {
			col, err := gallery.Load(g.Dir, gallery.Options{Name: g.Name, Placeholders: placeholders})
			if err != nil {
				errs = append(errs, err)
				col = gallery.Collection{Name: g.Name, Dir: g.Dir, Images: gallery.Placeholders(placeholders), Err: err}
			}
			out = append(out, col)
		}
		return out, errors.Join(errs...)
	}
}

// setupLogging routes the standard logger to path. The terminal belongs to
// the TUI, so without a path output is discarded.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(path, "reel")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}
