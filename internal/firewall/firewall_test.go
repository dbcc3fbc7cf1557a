package firewall

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/misbah7172/Custom-Browser/internal/db"
	"github.com/misbah7172/Custom-Browser/internal/hostname"
	"github.com/misbah7172/Custom-Browser/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFirewall(t *testing.T) *Firewall {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "browser.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return New(database, nil)
}

func TestCheckExactMatchOnly(t *testing.T) {
	fw := newTestFirewall(t)

	_, err := fw.Block("evil.test", "")
	require.NoError(t, err)

	tests := []struct {
		url        string
		wantDenied bool
		wantDomain string
	}{
		{"http://evil.test/page", true, "evil.test"},
		{"https://EVIL.test:443/", true, "evil.test"},
		{"http://sub.evil.test/", false, "sub.evil.test"},
		{"http://notevil.test/", false, "notevil.test"},
		{"http://evil.test.example/", false, "evil.test.example"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			d, err := fw.Check(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDenied, d.Denied())
			assert.Equal(t, tt.wantDomain, d.Domain)
		})
	}
}

func TestBlockIsIdempotent(t *testing.T) {
	fw := newTestFirewall(t)

	_, err := fw.Block("evil.test", "malware")
	require.NoError(t, err)
	_, err = fw.Block("EVIL.TEST", "again")
	require.NoError(t, err)

	domains, err := fw.ListBlocked()
	require.NoError(t, err)
	assert.Equal(t, []string{"evil.test"}, domains)

	entries, err := fw.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "malware", entries[0].Reason)
}

func TestBlockNormalizesURLs(t *testing.T) {
	fw := newTestFirewall(t)

	domain, err := fw.Block("https://Tracker.Example.com/pixel.gif", "")
	require.NoError(t, err)
	assert.Equal(t, "tracker.example.com", domain)

	entries, err := fw.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultReason, entries[0].Reason)
}

func TestUnblockNeverBlocked(t *testing.T) {
	fw := newTestFirewall(t)

	_, err := fw.Block("a.test", "")
	require.NoError(t, err)

	_, err = fw.Unblock("never.test")
	require.NoError(t, err)

	domains, err := fw.ListBlocked()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.test"}, domains)

	_, err = fw.Unblock("http://a.test/anything")
	require.NoError(t, err)

	d, err := fw.Check("http://a.test/")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestBlockEmptyDomain(t *testing.T) {
	fw := newTestFirewall(t)

	_, err := fw.Block("  ", "")
	assert.ErrorIs(t, err, hostname.ErrEmptyHost)
}

type brokenStore struct{}

var errDiskGone = errors.New("disk gone")

func (brokenStore) AddBlock(string, string) error             { return errDiskGone }
func (brokenStore) RemoveBlock(string) error                  { return errDiskGone }
func (brokenStore) ListBlocked() ([]models.BlockEntry, error) { return nil, errDiskGone }
func (brokenStore) IsBlocked(string) (bool, error)            { return false, errDiskGone }

func TestCheckSurfacesReadFailure(t *testing.T) {
	fw := New(brokenStore{}, nil)

	_, err := fw.Check("http://a.test/")
	assert.ErrorIs(t, err, errDiskGone)
}
