package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SlideWidth != defaultSlideWidth || cfg.SlideHeight != defaultSlideHeight || cfg.Gap != defaultGap {
		t.Fatalf("slide geometry = %d/%d/%d, want defaults", cfg.SlideWidth, cfg.SlideHeight, cfg.Gap)
	}
	if cfg.RescanEvery != defaultRescan {
		t.Fatalf("RescanEvery = %v, want %v", cfg.RescanEvery, defaultRescan)
	}
	if cfg.Transition != 350*time.Millisecond {
		t.Fatalf("Transition = %v, want 350ms", cfg.Transition)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if len(cfg.Galleries) != 1 || cfg.Galleries[0].Name != defaultGalleryName {
		t.Fatalf("Galleries = %#v, want one default gallery", cfg.Galleries)
	}
	if cfg.Galleries[0].Autoplay() != 0 {
		t.Fatalf("default autoplay = %v, want disabled", cfg.Galleries[0].Autoplay())
	}
}

func TestLoad_ParsesGalleries(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_file = "  ~/logs/reel.log  "
rescan_seconds = 0
slide_width = 3
gap = 4
placeholders = 0
transition_ms = 500
drag_min_threshold = 6

[[gallery]]
name = "Festival"
dir = "~/pics/festival"
autoplay_ms = 4000

[[gallery]]
dir = "/srv/artists"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogFile != filepath.Join(home, "logs/reel.log") {
		t.Fatalf("LogFile = %q, want it under HOME", cfg.LogFile)
	}
	if cfg.RescanEvery != 0 {
		t.Fatalf("RescanEvery = %v, want disabled", cfg.RescanEvery)
	}
	if cfg.SlideWidth != minSlideWidth {
		t.Fatalf("SlideWidth = %d, want clamp to %d", cfg.SlideWidth, minSlideWidth)
	}
	if cfg.Gap != 4 || cfg.Placeholders != 0 {
		t.Fatalf("Gap/Placeholders = %d/%d, want 4/0", cfg.Gap, cfg.Placeholders)
	}
	if cfg.Transition != 500*time.Millisecond {
		t.Fatalf("Transition = %v, want 500ms", cfg.Transition)
	}
	if cfg.DragMinThreshold != 6 {
		t.Fatalf("DragMinThreshold = %v, want 6", cfg.DragMinThreshold)
	}
	if len(cfg.Galleries) != 2 {
		t.Fatalf("Galleries = %d, want 2", len(cfg.Galleries))
	}
	first := cfg.Galleries[0]
	if first.Name != "Festival" || first.Dir != filepath.Join(home, "pics/festival") || first.Autoplay() != 4*time.Second {
		t.Fatalf("first gallery = %#v", first)
	}
	if second := cfg.Galleries[1]; second.Name != "artists" || second.AutoplayMs != 0 {
		t.Fatalf("second gallery = %#v, want name from dir and no autoplay", second)
	}
}

func TestLoad_GalleryWithoutDirFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[gallery]]\nname = \"x\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "dir is required") {
		t.Fatalf("Load error = %v, want dir is required", err)
	}
}

func TestLoad_NegativeAutoplayFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[gallery]]\ndir = \"/x\"\nautoplay_ms = -1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want invalid config")
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`gap = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvGalleryDir, "~/shots")
	t.Setenv(EnvAutoplayMs, "2500")
	t.Setenv(EnvLogFile, "/tmp/reel-test.log")

	cfg, err := Load(filepath.Join(home, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Galleries) != 1 || cfg.Galleries[0].Dir != filepath.Join(home, "shots") || cfg.Galleries[0].Name != "shots" {
		t.Fatalf("Galleries = %#v, want single env gallery", cfg.Galleries)
	}
	if cfg.Galleries[0].Autoplay() != 2500*time.Millisecond {
		t.Fatalf("Autoplay = %v, want 2.5s", cfg.Galleries[0].Autoplay())
	}
	if cfg.LogFile != "/tmp/reel-test.log" {
		t.Fatalf("LogFile = %q", cfg.LogFile)
	}
}

func TestLoad_BadEnvAutoplay(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAutoplayMs, "soon")
	if _, err := Load(""); err == nil {
		t.Fatalf("Load returned nil error, want env parse error")
	}
}

func TestSave_RoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Gap = 3
	cfg.Galleries = []Gallery{{Name: "Live", Dir: "/srv/live", AutoplayMs: 3000}}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Gap != 3 {
		t.Fatalf("Gap = %d, want 3", loaded.Gap)
	}
	if len(loaded.Galleries) != 1 || loaded.Galleries[0] != cfg.Galleries[0] {
		t.Fatalf("Galleries = %#v, want %#v", loaded.Galleries, cfg.Galleries)
	}
	if loaded.RescanEvery != cfg.RescanEvery || loaded.Transition != cfg.Transition {
		t.Fatalf("timing = %v/%v, want %v/%v", loaded.RescanEvery, loaded.Transition, cfg.RescanEvery, cfg.Transition)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
