package main

import (
	"context"
	"fmt"

	"github.com/misbah7172/Custom-Browser/internal/browser"
	"github.com/misbah7172/Custom-Browser/internal/models"
	"github.com/misbah7172/Custom-Browser/internal/ui"
)

// spinnerFetcher shows a spinner while the wrapped fetcher loads a page
type spinnerFetcher struct {
	inner browser.Fetcher
	spin  func(title string, action func() error) error
}

func newSpinnerFetcher(inner browser.Fetcher) spinnerFetcher {
	return spinnerFetcher{inner: inner, spin: ui.RunWithSpinner}
}

// Fetch runs the wrapped fetch exactly once. The spinner only waits for it,
// so a spinner that fails to start does not lose or repeat the request.
func (s spinnerFetcher) Fetch(ctx context.Context, rawURL string) models.FetchOutcome {
	result := make(chan models.FetchOutcome, 1)
	loaded := make(chan struct{})
	go func() {
		defer close(loaded)
		result <- s.inner.Fetch(ctx, rawURL)
	}()

	// The outcome arrives on result either way; a spinner error only means nothing was drawn
	_ = s.spin(fmt.Sprintf("Loading %s...", rawURL), func() error {
		<-loaded
		return nil
	})
	return <-result
}

// SetDoNotTrack forwards the Do Not Track switch to the wrapped fetcher
func (s spinnerFetcher) SetDoNotTrack(enabled bool) {
	if d, ok := s.inner.(browser.DoNotTracker); ok {
		d.SetDoNotTrack(enabled)
	}
}
