package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Gallery is one carousel shown by reel.
type Gallery struct {
	Name       string `toml:"name"`
	Dir        string `toml:"dir"`
	AutoplayMs int    `toml:"autoplay_ms"`
}

// Autoplay returns the autoplay delay; zero disables autoplay.
func (g Gallery) Autoplay() time.Duration {
	return time.Duration(g.AutoplayMs) * time.Millisecond
}

// Config captures everything reel reads from config.toml.
type Config struct {
	LogFile          string
	RescanEvery      time.Duration
	SlideWidth       int
	SlideHeight      int
	Gap              int
	Placeholders     int
	Transition       time.Duration
	DragThreshold    float64
	DragMinThreshold float64
	Galleries        []Gallery
}

const (
	defaultConfigPath   = "~/.config/reel/config.toml"
	defaultLogFile      = "~/.local/state/reel/reel.log"
	defaultGalleryDir   = "./gallery"
	defaultGalleryName  = "gallery"
	defaultRescan       = 5 * time.Second
	defaultSlideWidth   = 30
	defaultSlideHeight  = 14
	defaultGap          = 2
	defaultPlaceholders = 8
	defaultTransition   = 350 * time.Millisecond
	defaultDragMin      = 4

	minSlideWidth  = 8
	minSlideHeight = 4
)

// Environment overrides, applied after the file.
const (
	EnvGalleryDir = "REEL_GALLERY_DIR"
	EnvAutoplayMs = "REEL_AUTOPLAY_MS"
	EnvLogFile    = "REEL_LOG_FILE"
)

type rawGallery struct {
	Name       string `toml:"name"`
	Dir        string `toml:"dir"`
	AutoplayMs *int   `toml:"autoplay_ms"`
}

type rawConfig struct {
	LogFile          *string      `toml:"log_file"`
	RescanSeconds    *int         `toml:"rescan_seconds"`
	SlideWidth       *int         `toml:"slide_width"`
	SlideHeight      *int         `toml:"slide_height"`
	Gap              *int         `toml:"gap"`
	Placeholders     *int         `toml:"placeholders"`
	TransitionMs     *int         `toml:"transition_ms"`
	DragThreshold    *float64     `toml:"drag_threshold"`
	DragMinThreshold *float64     `toml:"drag_min_threshold"`
	Galleries        []rawGallery `toml:"gallery"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogFile:          mustExpand(defaultLogFile),
		RescanEvery:      defaultRescan,
		SlideWidth:       defaultSlideWidth,
		SlideHeight:      defaultSlideHeight,
		Gap:              defaultGap,
		Placeholders:     defaultPlaceholders,
		Transition:       defaultTransition,
		DragMinThreshold: defaultDragMin,
		Galleries:        []Gallery{{Name: defaultGalleryName, Dir: mustExpand(defaultGalleryDir)}},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses config.toml, falling back to defaults when missing.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg)
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := raw.apply(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return applyEnv(cfg)
}

func (raw rawConfig) apply(cfg *Config) error {
	if raw.LogFile != nil {
		cfg.LogFile = strings.TrimSpace(*raw.LogFile)
		if cfg.LogFile != "" {
			cfg.LogFile = mustExpand(cfg.LogFile)
		}
	}
	if raw.RescanSeconds != nil {
		if *raw.RescanSeconds < 0 {
			return fmt.Errorf("rescan_seconds must not be negative")
		}
		cfg.RescanEvery = time.Duration(*raw.RescanSeconds) * time.Second
	}
	if raw.SlideWidth != nil {
		cfg.SlideWidth = max(*raw.SlideWidth, minSlideWidth)
	}
	if raw.SlideHeight != nil {
		cfg.SlideHeight = max(*raw.SlideHeight, minSlideHeight)
	}
	if raw.Gap != nil {
		cfg.Gap = max(*raw.Gap, 0)
	}
	if raw.Placeholders != nil {
		cfg.Placeholders = max(*raw.Placeholders, 0)
	}
	if raw.TransitionMs != nil && *raw.TransitionMs > 0 {
		cfg.Transition = time.Duration(*raw.TransitionMs) * time.Millisecond
	}
	if raw.DragThreshold != nil {
		cfg.DragThreshold = max(*raw.DragThreshold, 0)
	}
	if raw.DragMinThreshold != nil && *raw.DragMinThreshold > 0 {
		cfg.DragMinThreshold = *raw.DragMinThreshold
	}

	if len(raw.Galleries) == 0 {
		return nil
	}
	cfg.Galleries = cfg.Galleries[:0]
	for i, g := range raw.Galleries {
		dir := strings.TrimSpace(g.Dir)
		if dir == "" {
			return fmt.Errorf("gallery %d: dir is required", i+1)
		}
		name := strings.TrimSpace(g.Name)
		if name == "" {
			name = filepath.Base(dir)
		}
		autoplay := 0
		if g.AutoplayMs != nil {
			if *g.AutoplayMs < 0 {
				return fmt.Errorf("gallery %q: autoplay_ms must not be negative", name)
			}
			autoplay = *g.AutoplayMs
		}
		cfg.Galleries = append(cfg.Galleries, Gallery{Name: name, Dir: mustExpand(dir), AutoplayMs: autoplay})
	}
	return nil
}

func applyEnv(cfg Config) (Config, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvGalleryDir)); dir != "" {
		cfg.Galleries = []Gallery{{Name: filepath.Base(dir), Dir: mustExpand(dir)}}
	}
	if raw := strings.TrimSpace(os.Getenv(EnvAutoplayMs)); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return Config{}, fmt.Errorf("%s: want a non-negative integer, got %q", EnvAutoplayMs, raw)
		}
		for i := range cfg.Galleries {
			cfg.Galleries[i].AutoplayMs = ms
		}
	}
	if lf := strings.TrimSpace(os.Getenv(EnvLogFile)); lf != "" {
		cfg.LogFile = mustExpand(lf)
	}
	return cfg, nil
}

// Save writes cfg as config.toml, creating parent directories.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	rescan := int(cfg.RescanEvery / time.Second)
	transition := int(cfg.Transition / time.Millisecond)
	raw := rawConfig{
		LogFile:          &cfg.LogFile,
		RescanSeconds:    &rescan,
		SlideWidth:       &cfg.SlideWidth,
		SlideHeight:      &cfg.SlideHeight,
		Gap:              &cfg.Gap,
		Placeholders:     &cfg.Placeholders,
		TransitionMs:     &transition,
		DragThreshold:    &cfg.DragThreshold,
		DragMinThreshold: &cfg.DragMinThreshold,
	}
	for _, g := range cfg.Galleries {
		autoplay := g.AutoplayMs
		raw.Galleries = append(raw.Galleries, rawGallery{Name: g.Name, Dir: g.Dir, AutoplayMs: &autoplay})
	}

	bytes, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolvePath expands path, or the default location when empty.
func ResolvePath(path string) (string, error) {
	return resolvePath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
