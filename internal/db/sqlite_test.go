package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/misbah7172/Custom-Browser/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile", "browser.db")
	database, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, path
}

func strPtr(s string) *string { return &s }

// TestNewIsIdempotent verifies reopening an existing file keeps its contents
func TestNewIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "browser.db")

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.AppendVisit(&models.VisitRecord{URL: "http://a.test/", Timestamp: time.Now()}))
	require.NoError(t, first.AddBlock("evil.test", "test"))
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	visits, err := second.ListVisits()
	require.NoError(t, err)
	assert.Len(t, visits, 1)

	blocked, err := second.IsBlocked("evil.test")
	require.NoError(t, err)
	assert.True(t, blocked)
}

// TestNewPathWithURIDelimiters verifies '?' and '#' in the path name a file, not URI parts
func TestNewPathWithURIDelimiters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd?dir#1", "100% browser.db")

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.AppendVisit(&models.VisitRecord{URL: "http://a.test/", Timestamp: time.Now()}))
	require.NoError(t, first.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	visits, err := second.ListVisits()
	require.NoError(t, err)
	assert.Len(t, visits, 1)
}

func TestDataSourceName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "absolute", path: "/tmp/browser.db", want: "file:/tmp/browser.db?" + connParams},
		{name: "relative", path: "data/browser.db", want: "file:data/browser.db?" + connParams},
		{name: "query delimiter", path: "/tmp/a?b.db", want: "file:/tmp/a%3Fb.db?" + connParams},
		{name: "fragment delimiter", path: "/tmp/a#b.db", want: "file:/tmp/a%23b.db?" + connParams},
		{name: "percent", path: "/tmp/100%.db", want: "file:/tmp/100%25.db?" + connParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dataSourceName(tt.path))
		})
	}
}

func TestAppendAndListVisits(t *testing.T) {
	database, _ := openTestDB(t)
	base := time.Date(2026, 10, 19, 12, 0, 0, 123456789, time.UTC)

	records := []models.VisitRecord{
		{URL: "http://one.test/", Title: strPtr("One"), Address: strPtr("10.0.0.1"), Timestamp: base},
		{URL: "http://two.test/", Timestamp: base.Add(time.Second)},
		{URL: "http://three.test/", Location: strPtr("Dhaka"), Timestamp: base.Add(2 * time.Second)},
	}
	for i := range records {
		require.NoError(t, database.AppendVisit(&records[i]))
		assert.NotZero(t, records[i].ID)
	}

	got, err := database.ListVisits()
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, v := range got {
		assert.Equal(t, records[i].ID, v.ID)
		assert.Equal(t, records[i].URL, v.URL)
		assert.Equal(t, records[i].Title, v.Title)
		assert.Equal(t, records[i].Address, v.Address)
		assert.Equal(t, records[i].Location, v.Location)
		assert.True(t, records[i].Timestamp.Equal(v.Timestamp), "timestamp %d: %v != %v", i, records[i].Timestamp, v.Timestamp)
	}

	latest, err := database.LatestVisitTime()
	require.NoError(t, err)
	assert.True(t, latest.Equal(base.Add(2*time.Second)))
}

func TestLatestVisitTimeEmpty(t *testing.T) {
	database, _ := openTestDB(t)

	latest, err := database.LatestVisitTime()
	require.NoError(t, err)
	assert.True(t, latest.IsZero())
}

func TestRecentVisits(t *testing.T) {
	database, _ := openTestDB(t)
	now := time.Now()
	for _, u := range []string{"http://a.test/", "http://b.test/", "http://c.test/", "http://d.test/"} {
		require.NoError(t, database.AppendVisit(&models.VisitRecord{URL: u, Timestamp: now}))
	}

	tests := []struct {
		limit int
		want  []string
	}{
		{2, []string{"http://c.test/", "http://d.test/"}},
		{10, []string{"http://a.test/", "http://b.test/", "http://c.test/", "http://d.test/"}},
		{0, []string{"http://a.test/", "http://b.test/", "http://c.test/", "http://d.test/"}},
	}

	for _, tt := range tests {
		visits, err := database.RecentVisits(tt.limit)
		require.NoError(t, err)

		var urls []string
		for _, v := range visits {
			urls = append(urls, v.URL)
		}
		assert.Equal(t, tt.want, urls, "limit %d", tt.limit)
	}
}

func TestClearVisits(t *testing.T) {
	database, _ := openTestDB(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, database.AppendVisit(&models.VisitRecord{URL: "http://a.test/", Timestamp: time.Now()}))
	}

	n, err := database.ClearVisits()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	visits, err := database.ListVisits()
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestBlocklist(t *testing.T) {
	database, _ := openTestDB(t)

	require.NoError(t, database.AddBlock("evil.test", "first"))
	require.NoError(t, database.AddBlock("evil.test", "second"))
	require.NoError(t, database.AddBlock("ads.test", "Manually blocked"))

	entries, err := database.ListBlocked()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ads.test", entries[0].Domain)
	assert.Equal(t, "evil.test", entries[1].Domain)
	assert.Equal(t, "first", entries[1].Reason, "re-blocking must not replace the entry")
	assert.False(t, entries[1].BlockedAt.IsZero())

	require.NoError(t, database.RemoveBlock("never-blocked.test"))
	require.NoError(t, database.RemoveBlock("evil.test"))

	blocked, err := database.IsBlocked("evil.test")
	require.NoError(t, err)
	assert.False(t, blocked)

	blocked, err = database.IsBlocked("ads.test")
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestStorageErrorAfterClose(t *testing.T) {
	database, _ := openTestDB(t)
	require.NoError(t, database.Close())

	err := database.AppendVisit(&models.VisitRecord{URL: "http://a.test/", Timestamp: time.Now()})
	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr), "got %v", err)

	_, err = database.ListVisits()
	assert.True(t, errors.As(err, &storageErr))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2026-10-19 12:00:00", false},
		{"2026-10-19T12:00:00Z", false},
		{"2026-10-19T12:00:00.5+02:00", false},
		{"yesterday", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseTimestamp(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseTimestamp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
