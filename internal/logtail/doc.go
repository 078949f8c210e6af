// Package logtail reads and colorizes reel's own log file for the log
// overlay.
//
// Read keeps a ring buffer of maxLines entries so a large log costs one
// sequential pass and O(maxLines) memory:
//
//	lines, err := logtail.Read("~/.local/state/reel/reel.log", 500)
//
// Lines are expected in the standard logger's format, optionally prefixed:
//
//	reel 2026/10/14 12:00:01 gallery scan failed: open /srv/x: permission denied
//
// Split breaks a line into prefix, timestamp and message and guesses a level
// from the message. Palette.Line renders those parts with lipgloss styles;
// the UI builds the palette from the active theme.
package logtail
