package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/five82/reel/internal/config"
)

type wizardGallery struct {
	Name       string
	Dir        string
	AutoplayMs string
}

type wizardConfig struct {
	Galleries   []wizardGallery
	SlideWidth  string
	SlideHeight string
	Gap         string
	Rescan      string
}

// runInit asks for galleries and layout, then writes config.toml.
func runInit(args []string) error {
	fs := flag.NewFlagSet("reel init", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file to write (default ~/.config/reel/config.toml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := config.ResolvePath(*configPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		overwrite := false
		if err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title(fmt.Sprintf("%s exists. Overwrite?", path)).Value(&overwrite),
		)).Run(); err != nil {
			return err
		}
		if !overwrite {
			return nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	defaults := config.Default()
	wc := wizardConfig{
		SlideWidth:  strconv.Itoa(defaults.SlideWidth),
		SlideHeight: strconv.Itoa(defaults.SlideHeight),
		Gap:         strconv.Itoa(defaults.Gap),
		Rescan:      strconv.Itoa(int(defaults.RescanEvery.Seconds())),
	}

	for {
		g, err := askGallery(len(wc.Galleries) + 1)
		if err != nil {
			return err
		}
		wc.Galleries = append(wc.Galleries, g)

		more := false
		if err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Add another gallery?").Value(&more),
		)).Run(); err != nil {
			return err
		}
		if !more {
			break
		}
	}

	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Slide width (cells)").Value(&wc.SlideWidth).Validate(validatePositiveInt),
		huh.NewInput().Title("Slide height (cells)").Value(&wc.SlideHeight).Validate(validatePositiveInt),
		huh.NewInput().Title("Gap between slides (cells)").Value(&wc.Gap).Validate(validateNonNegativeInt),
		huh.NewInput().Title("Rescan interval in seconds (0 = never)").Value(&wc.Rescan).Validate(validateNonNegativeInt),
	)).Run(); err != nil {
		return err
	}

	cfg, err := buildConfig(wc, defaults)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func askGallery(n int) (wizardGallery, error) {
	g := wizardGallery{Dir: "./gallery", AutoplayMs: "0"}
	if n == 1 {
		if cwd, err := os.Getwd(); err == nil {
			g.Dir = filepath.Join(cwd, "gallery")
		}
	}
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(fmt.Sprintf("Gallery %d directory", n)).Value(&g.Dir).Validate(validateRequired),
		huh.NewInput().Title("Name (empty = directory name)").Value(&g.Name),
		huh.NewInput().Title("Autoplay delay in ms (0 = off)").Value(&g.AutoplayMs).Validate(validateNonNegativeInt),
	)).Run()
	return g, err
}

// buildConfig converts validated wizard answers into a config.
func buildConfig(wc wizardConfig, base config.Config) (config.Config, error) {
	cfg := base
	var err error
	if cfg.SlideWidth, err = atoiField("slide width", wc.SlideWidth); err != nil {
		return cfg, err
	}
	if cfg.SlideHeight, err = atoiField("slide height", wc.SlideHeight); err != nil {
		return cfg, err
	}
	if cfg.Gap, err = atoiField("gap", wc.Gap); err != nil {
		return cfg, err
	}
	rescan, err := atoiField("rescan", wc.Rescan)
	if err != nil {
		return cfg, err
	}
	cfg.RescanEvery = secondsDuration(rescan)

	cfg.Galleries = nil
	for _, g := range wc.Galleries {
		dir := strings.TrimSpace(g.Dir)
		if dir == "" {
			return cfg, fmt.Errorf("gallery directory is required")
		}
		name := strings.TrimSpace(g.Name)
		if name == "" {
			name = filepath.Base(dir)
		}
		autoplay, err := atoiField("autoplay", g.AutoplayMs)
		if err != nil {
			return cfg, err
		}
		cfg.Galleries = append(cfg.Galleries, config.Gallery{Name: name, Dir: dir, AutoplayMs: autoplay})
	}
	if len(cfg.Galleries) == 0 {
		return cfg, fmt.Errorf("at least one gallery is required")
	}
	return cfg, nil
}

func atoiField(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return n, nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}

func secondsDuration(n int) time.Duration {
	return time.Duration(n) * time.Second
}
