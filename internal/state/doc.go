// Package state provides thread-safe sharing of scanned galleries between
// the background rescan poller and the UI.
//
//	Producer (poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ gallery.Load() │            │ tick            │
//	│      ↓         │            │      ↓          │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │ re-init changed │
//	└────────────────┘            └─────────────────┘
//
// Snapshots are deep enough copies that the UI may keep them without
// locking: the gallery slice and each image slice are cloned. A failed scan
// keeps the previous galleries and increments ConsecutiveFailures.
package state
