// Package ui is reel's terminal front end, built on Bubble Tea.
//
// # Layout
//
// A one-row header shows gallery totals and scan health. Each gallery gets a
// pane stacked below it:
//
//	▌ Festival  3/8  ▶ autoplay        title row
//	╭────╮ ╭──────────╮ ╭────╮         track: neighbors peek in at the edges
//	│    │ │  ▀▀▀▀▀▀  │ │    │
//	╰────╯ ╰──────────╯ ╰────╯
//	 ‹        ○ ○ ● ○ ○         ›      controls row
//
// A one-row footer carries key hints and the shown slide's label. Panes that
// do not fit are scrolled with the mouse wheel or by moving focus.
//
// # Carousels
//
// Every pane drives a carousel.Engine. The pane is the engine's Layout (the
// viewport is the terminal width, the slide width is measured from a rendered
// card) and owns its Track, which eases the displayed offset toward the
// engine's target on 16ms frame ticks. Engine timers run through loopClock as
// tea.Tick commands, so settle checks and autoplay fire inside Update like
// any other message.
//
// Cards are styled by logical slide, so a boundary clone looks exactly like
// the slide it copies and the wrap-around correction is invisible.
//
// # Input
//
//   - ←/→ (p/n), g/G, 1-9: navigate the focused gallery, or the hovered one,
//     or the first
//   - Space: toggle autoplay
//   - tab/shift+tab: cycle focus including an unfocused stop; j/k move it
//   - Drag on a track: swipe; ‹ › and dots on the controls row are clickable
//   - l: log overlay; i: about the gallery; T: cycle theme; h/?: help
//
// Hovering a pane, focusing it, or dragging it pauses its autoplay. Losing
// terminal focus releases hover and focus holds.
//
// # Data Flow
//
//  1. A poll tick fetches a state.Store snapshot
//  2. syncPanes keeps panes whose gallery fingerprint is unchanged and
//     destroys and rebuilds the rest
//  3. Thumbnails decode in a command and arrive as thumbnailsMsg
//  4. On exit the final model saves prefs and destroys every engine
package ui
