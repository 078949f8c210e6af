package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/five82/reel/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 && args[0] == "init" {
		if err := runInit(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "reel init: %v\n", err)
			return 1
		}
		return 0
	}

	fs := flag.NewFlagSet("reel", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path (default ~/.config/reel/config.toml)")
	dir := fs.String("dir", "", "show a single gallery directory instead of the configured ones")
	autoplayMs := fs.Int("autoplay", -1, "autoplay delay in milliseconds for every gallery, 0 disables")
	envFile := fs.String("env", ".env", "dotenv file with REEL_* overrides")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "reel: load %s: %v\n", *envFile, err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Dir:        *dir,
		AutoplayMs: *autoplayMs,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "reel: %v\n", err)
		return 1
	}
	return 0
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
