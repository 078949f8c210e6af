package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/reel/internal/gallery"
)

func sample() []gallery.Collection {
	return []gallery.Collection{
		{Name: "main", Images: gallery.Placeholders(2)},
		{Name: "artists"},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(sample(), nil)

	snap := s.Snapshot()
	if !snap.HasData || len(snap.Galleries) != 2 {
		t.Fatalf("snapshot = %#v, want 2 galleries", snap)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Galleries[0].Images[0].Title = "changed"
	snap.Galleries[1].Name = "renamed"
	snap2 := s.Snapshot()
	if snap2.Galleries[0].Images[0].Title != "Gallery Image 01" {
		t.Fatalf("Snapshot should clone images; got %q", snap2.Galleries[0].Images[0].Title)
	}
	if snap2.Galleries[1].Name != "artists" {
		t.Fatalf("Snapshot should clone galleries; got %q", snap2.Galleries[1].Name)
	}
}

func TestSnapshot_GalleryLookup(t *testing.T) {
	var s Store
	s.Update(sample(), nil)

	g, ok := s.Snapshot().Gallery("main")
	if !ok || len(g.Images) != 2 {
		t.Fatalf("Gallery(main) = %#v, %v", g, ok)
	}
	if _, ok := s.Snapshot().Gallery("missing"); ok {
		t.Fatalf("Gallery(missing) found, want not found")
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store
	s.Update(sample(), nil)

	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if len(snap.Galleries) != 2 || !snap.HasData {
		t.Fatalf("galleries changed on error: %#v", snap.Galleries)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_PartialFailureKeepsFailedGallery(t *testing.T) {
	var s Store
	s.Update(sample(), nil)

	scanErr := errors.New("parse manifest")
	s.Update([]gallery.Collection{
		{Name: "main", Images: gallery.Placeholders(5), Err: scanErr},
		{Name: "artists", Images: gallery.Placeholders(1)},
		{Name: "new", Images: gallery.Placeholders(4), Err: scanErr},
	}, scanErr)

	snap := s.Snapshot()
	if len(snap.Galleries) != 3 || snap.ConsecutiveFailures != 1 {
		t.Fatalf("snapshot = %#v", snap)
	}
	if g := snap.Galleries[0]; len(g.Images) != 2 || !errors.Is(g.Err, scanErr) {
		t.Fatalf("main = %#v, want previous 2 images with the error", g)
	}
	if g := snap.Galleries[1]; len(g.Images) != 1 || g.Err != nil {
		t.Fatalf("artists = %#v, want the fresh scan", g)
	}
	if g := snap.Galleries[2]; len(g.Images) != 4 {
		t.Fatalf("new = %#v, want its placeholders", g)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsFailing() {
		t.Fatal("IsFailing() = true, want false with 0 failures")
	}

	s.Update(nil, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsFailing() {
		t.Fatalf("after one failure: %d failing=%v", snap.ConsecutiveFailures, snap.IsFailing())
	}

	s.Update(nil, errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsFailing() {
		t.Fatalf("after two failures: %d failing=%v", snap.ConsecutiveFailures, snap.IsFailing())
	}

	s.Update(sample(), nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsFailing() {
		t.Fatalf("after success: %d failing=%v", snap.ConsecutiveFailures, snap.IsFailing())
	}
}
