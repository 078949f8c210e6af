// Package config handles loading, validating and writing reel's TOML
// configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/reel/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing, use defaults for those fields
//  5. Apply REEL_GALLERY_DIR, REEL_AUTOPLAY_MS and REEL_LOG_FILE overrides
//
// # Default Values
//
//   - Config file: ~/.config/reel/config.toml
//   - Log file: ~/.local/state/reel/reel.log
//   - Gallery: one gallery named "gallery" at ./gallery, autoplay off
//   - Rescan: every 5 seconds
//   - Slides: 30x14 cells with a gap of 2
//   - Placeholders: 8 when a gallery is empty
//   - Transition: 350ms
//   - Drag threshold: max(4 cells, a quarter of the slide step)
//
// # TOML Format
//
//	log_file = "~/.local/state/reel/reel.log"
//	rescan_seconds = 5
//	slide_width = 30
//	slide_height = 14
//	gap = 2
//	placeholders = 8
//	transition_ms = 350
//	drag_threshold = 0       # fixed distance in cells, 0 uses the formula
//	drag_min_threshold = 4
//
//	[[gallery]]
//	name = "Festival"
//	dir = "~/Pictures/festival"
//	autoplay_ms = 4000
//
// Slide sizes below the minimum are clamped rather than rejected. A gallery
// table without dir, or a negative autoplay, is an error.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and invalid values. Missing config files
// are NOT an error.
//
// Save writes the same format and is used by `reel init`.
package config
