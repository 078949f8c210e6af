// Package app provides the orchestration layer for reel.
//
// # Architecture
//
//  1. Load config (~/.config/reel/config.toml) and apply CLI overrides
//  2. Route the standard logger to the log file via tea.LogToFile
//  3. Load prefs (theme, last focused gallery)
//  4. Scan every gallery once into a shared state.Store
//  5. Launch the rescan poller goroutine
//  6. Start the TUI and block until the user exits or the context cancels
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()      Read config
//	       ├─────> setupLogging()     Log file
//	       ├─────> refresh()          Initial scan
//	       ├─────> StartPoller()      Background rescans
//	       └─────> ui.Run()           TUI (blocks)
//
// # Polling Behavior
//
// The poller rescans at the configured interval (default 5s, 0 disables).
// A failed scan keeps the previous galleries in the store and doubles the
// wait, capped at 30 seconds. The UI compares gallery fingerprints on its own
// tick and rebuilds only carousels whose content changed.
//
// # Error Handling
//
// Fatal (returned from Run): config errors, log file errors. Everything
// else is logged and retried.
package app
