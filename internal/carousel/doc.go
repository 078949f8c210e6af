// Package carousel implements an infinite-loop slide carousel engine.
//
// # Track
//
// N logical slides are rendered as N+2 entries: a copy of the last slide is
// prepended and a copy of the first is appended.
//
//	rendered: [ last' | s0 | s1 | ... | sN-1 | first' ]
//	index:       0      1    2          N      N+1
//
// Navigation animates onto the neighbour. When the animation lands on a
// clone, the settle step instantly moves to the real slide it copies. Both
// render pixel-identically, so the wrap is invisible and the index rests in
// [1, N] after every settle.
//
// # Phases
//
//	Idle -> Animating (D) -> Idle
//	Idle -> Animating (D) -> Correcting (instant) -> Idle
//	Idle -> Dragging -> Animating
//
// The settle step is a Clock timer at D plus a small guard, not an
// animation-end callback, so dropped frames cannot skip it.
//
// # Collaborators
//
// The engine writes offsets to a Track, reads sizes from a Layout and
// schedules timers on a Clock. The host owns event delivery and must call the
// engine and deliver Clock callbacks from a single event loop.
//
//	offset = -index*step + sidePadding
//	step   = slideWidth + gap
//
// # Drag
//
// Drag is distance based: releasing beyond Threshold moves one slide,
// anything shorter animates back.
package carousel
