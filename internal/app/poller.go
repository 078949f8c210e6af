package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/reel/internal/gallery"
	"github.com/five82/reel/internal/state"
)

const (
	defaultRescanInterval = 5 * time.Second
	maxBackoff            = 30 * time.Second
)

// scanFunc produces the current gallery collections.
type scanFunc func() ([]gallery.Collection, error)

// StartPoller launches a background goroutine that rescans galleries at a
// fixed cadence, backing off while scans fail. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, scan scanFunc, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRescanInterval
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if err := refresh(store, scan); err != nil {
				failures++
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles the interval per consecutive failure up to maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 16 {
		return maxBackoff
	}
	backoff := base << failures
	if backoff > maxBackoff || backoff <= 0 {
		return maxBackoff
	}
	return backoff
}

func refresh(store *state.Store, scan scanFunc) error {
	galleries, err := scan()
	store.Update(galleries, err)
	if err != nil {
		log.Printf("gallery scan failed: %v", err)
	}
	return err
}
