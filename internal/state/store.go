package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/reel/internal/gallery"
)

// Snapshot represents the latest gallery scan available to the UI.
type Snapshot struct {
	Galleries           []gallery.Collection
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive scan failures
}

// IsFailing returns true when scans have failed repeatedly.
func (s Snapshot) IsFailing() bool {
	return s.ConsecutiveFailures >= 2
}

// Gallery returns the collection with the given name.
func (s Snapshot) Gallery(name string) (gallery.Collection, bool) {
	for _, g := range s.Galleries {
		if g.Name == name {
			return g, true
		}
	}
	return gallery.Collection{}, false
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored galleries and records err. A scan that returned
// nothing keeps the previous data. A gallery that failed with its own Err
// keeps the images it had before.
func (s *Store) Update(galleries []gallery.Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
	} else {
		s.snapshot.LastError = nil
		s.snapshot.ConsecutiveFailures = 0
	}
	if err != nil && galleries == nil {
		return
	}

	s.snapshot.Galleries = cloneGalleries(keepFailed(s.snapshot.Galleries, galleries))
	s.snapshot.HasData = true
}

// keepFailed swaps each failed gallery in next for its previous version.
func keepFailed(prev, next []gallery.Collection) []gallery.Collection {
	out := make([]gallery.Collection, len(next))
	for i, g := range next {
		out[i] = g
		if g.Err == nil {
			continue
		}
		for _, old := range prev {
			if old.Name == g.Name && len(old.Images) > 0 {
				old.Err = g.Err
				out[i] = old
				break
			}
		}
	}
	return out
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Galleries = cloneGalleries(s.snapshot.Galleries)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneGalleries(in []gallery.Collection) []gallery.Collection {
	if len(in) == 0 {
		return nil
	}
	dup := make([]gallery.Collection, len(in))
	for i, g := range in {
		dup[i] = g
		if g.Images != nil {
			dup[i].Images = make([]gallery.Image, len(g.Images))
			copy(dup[i].Images, g.Images)
		}
	}
	return dup
}
