package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchOutcomeTitlePtr(t *testing.T) {
	assert.Nil(t, FetchOutcome{OK: true}.TitlePtr())

	p := FetchOutcome{OK: true, Title: "Example Domain"}.TitlePtr()
	if assert.NotNil(t, p) {
		assert.Equal(t, "Example Domain", *p)
	}
}

func TestVisitRecordFallbacks(t *testing.T) {
	empty := ""
	addr := "93.184.216.34"

	tests := []struct {
		name      string
		record    VisitRecord
		wantTitle string
		wantAddr  string
	}{
		{"all absent", VisitRecord{URL: "http://a.test"}, "No title", "Unknown"},
		{"empty title", VisitRecord{URL: "http://a.test", Title: &empty}, "No title", "Unknown"},
		{"address set", VisitRecord{URL: "http://a.test", Address: &addr}, "No title", addr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTitle, tt.record.TitleOr("No title"))
			assert.Equal(t, tt.wantAddr, tt.record.AddressOr("Unknown"))
			assert.Equal(t, "Unknown", tt.record.LocationOr("Unknown"))
		})
	}
}
