package main

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/misbah7172/Custom-Browser/internal/models"
)

func TestWriteCSV(t *testing.T) {
	title := "Hello, \"World\""
	addr := "192.0.2.1"
	at := time.Date(2026, 10, 19, 8, 30, 0, 500, time.UTC)
	visits := []models.VisitRecord{
		{ID: 1, URL: "http://a.test/", Title: &title, Address: &addr, Timestamp: at},
		{ID: 2, URL: "http://b.test/", Timestamp: at},
	}

	var buf bytes.Buffer
	n, err := writeCSV(&buf, visits)
	if err != nil {
		t.Fatalf("writeCSV() error = %v", err)
	}
	if n != 2 {
		t.Errorf("writeCSV() wrote %d rows, want 2", n)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2", len(records))
	}
	if records[1][3] != title {
		t.Errorf("title = %q, want %q", records[1][3], title)
	}
	if records[1][1] != "2026-10-19T08:30:00.0000005Z" {
		t.Errorf("visit_time = %q", records[1][1])
	}
	if records[2][3] != "" || records[2][4] != "" {
		t.Errorf("missing values should be empty, got %q", records[2])
	}
}
