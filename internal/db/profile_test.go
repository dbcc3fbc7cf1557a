package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	database, _ := openTestDB(t)

	value, err := database.GetSetting(SettingDoNotTrack)
	require.NoError(t, err)
	assert.Empty(t, value, "missing key reads as empty")

	require.NoError(t, database.SetSetting(SettingDoNotTrack, "1"))
	require.NoError(t, database.SetSetting(SettingSearchURL, "https://duckduckgo.com/?q=%s"))

	value, err = database.GetSetting(SettingDoNotTrack)
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	require.NoError(t, database.SetSetting(SettingDoNotTrack, "0"))
	value, err = database.GetSetting(SettingDoNotTrack)
	require.NoError(t, err)
	assert.Equal(t, "0", value, "saving again overwrites")

	settings, err := database.ListSettings()
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, SettingDoNotTrack, settings[0].Key)
	assert.Equal(t, SettingSearchURL, settings[1].Key)
	assert.Equal(t, "https://duckduckgo.com/?q=%s", settings[1].Value)
	assert.False(t, settings[1].UpdatedAt.IsZero())

	require.NoError(t, database.DeleteSetting(SettingDoNotTrack))
	require.NoError(t, database.DeleteSetting("never-set"))

	template, err := database.GetSetting(SettingSearchURL)
	require.NoError(t, err)
	assert.Equal(t, "https://duckduckgo.com/?q=%s", template)

	settings, err = database.ListSettings()
	require.NoError(t, err)
	assert.Len(t, settings, 1)
}

func TestBookmarks(t *testing.T) {
	database, _ := openTestDB(t)

	empty, err := database.ListBookmarks()
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, database.AddBookmark("https://zeta.test/", "Zeta"))
	require.NoError(t, database.AddBookmark("https://alpha.test/", "alpha"))
	require.NoError(t, database.AddBookmark("https://middle.test/", ""))

	bookmarks, err := database.ListBookmarks()
	require.NoError(t, err)
	require.Len(t, bookmarks, 3)
	assert.Equal(t, "https://alpha.test/", bookmarks[0].URL, "ordering ignores case")
	assert.Equal(t, "https://middle.test/", bookmarks[1].URL, "untitled sorts by URL")
	assert.Equal(t, "", bookmarks[1].Title)
	assert.Equal(t, "Zeta", bookmarks[2].Title)
	firstAdded := bookmarks[2].AddedAt
	assert.False(t, firstAdded.IsZero())

	// Re-bookmarking renames in place
	require.NoError(t, database.AddBookmark("https://zeta.test/", "Aardvark"))
	bookmarks, err = database.ListBookmarks()
	require.NoError(t, err)
	require.Len(t, bookmarks, 3)
	assert.Equal(t, "Aardvark", bookmarks[0].Title)
	assert.Equal(t, firstAdded, bookmarks[0].AddedAt)

	removed, err := database.RemoveBookmark("https://zeta.test/")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = database.RemoveBookmark("https://zeta.test/")
	require.NoError(t, err)
	assert.False(t, removed)

	bookmarks, err = database.ListBookmarks()
	require.NoError(t, err)
	assert.Len(t, bookmarks, 2)
}

func TestProfileSurvivesReopen(t *testing.T) {
	database, path := openTestDB(t)
	require.NoError(t, database.AddBookmark("https://kept.test/", "Kept"))
	require.NoError(t, database.SetSetting(SettingDoNotTrack, "1"))
	require.NoError(t, database.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	bookmarks, err := reopened.ListBookmarks()
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, "Kept", bookmarks[0].Title)

	value, err := reopened.GetSetting(SettingDoNotTrack)
	require.NoError(t, err)
	assert.Equal(t, "1", value)
}
