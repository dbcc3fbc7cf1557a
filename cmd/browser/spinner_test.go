package main

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/misbah7172/Custom-Browser/internal/models"
	"github.com/stretchr/testify/assert"
)

// countingFetcher counts calls and tracks the Do Not Track switch
type countingFetcher struct {
	calls atomic.Int32
	dnt   atomic.Bool
}

func (f *countingFetcher) Fetch(_ context.Context, rawURL string) models.FetchOutcome {
	f.calls.Add(1)
	return models.FetchOutcome{OK: true, Title: "Loaded " + rawURL, StatusCode: 200}
}

func (f *countingFetcher) SetDoNotTrack(enabled bool) { f.dnt.Store(enabled) }

func TestSpinnerFetcherFetchesOnce(t *testing.T) {
	spinnerErr := errors.New("could not open terminal")

	tests := []struct {
		name string
		spin func(string, func() error) error
	}{
		{
			name: "spinner runs action",
			spin: func(_ string, action func() error) error { return action() },
		},
		{
			name: "spinner fails before action",
			spin: func(string, func() error) error { return spinnerErr },
		},
		{
			name: "spinner fails while action runs",
			spin: func(_ string, action func() error) error {
				go action()
				return spinnerErr
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &countingFetcher{}
			s := spinnerFetcher{inner: inner, spin: tt.spin}

			out := s.Fetch(context.Background(), "http://example.test")
			assert.True(t, out.OK)
			assert.Equal(t, "Loaded http://example.test", out.Title)
			assert.Equal(t, int32(1), inner.calls.Load())
		})
	}
}

func TestSpinnerFetcherForwardsDoNotTrack(t *testing.T) {
	inner := &countingFetcher{}
	s := newSpinnerFetcher(inner)

	s.SetDoNotTrack(true)
	assert.True(t, inner.dnt.Load())
	s.SetDoNotTrack(false)
	assert.False(t, inner.dnt.Load())
}
