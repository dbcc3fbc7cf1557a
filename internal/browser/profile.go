package browser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/misbah7172/Custom-Browser/internal/db"
	"github.com/misbah7172/Custom-Browser/internal/models"
)

var (
	// ErrNoProfile is returned by bookmark and settings commands when no profile store is attached
	ErrNoProfile = errors.New("bookmarks and settings are not available")
	// ErrNoCurrentPage is returned when a command needs an open page
	ErrNoCurrentPage = errors.New("no page is open")
	// ErrNoBookmark is returned for a bookmark number or URL that is not saved
	ErrNoBookmark = errors.New("no such bookmark")
	// ErrUnknownSetting is returned for keys the browser does not understand
	ErrUnknownSetting = errors.New("unknown setting")
)

// Profile stores the user's bookmarks and settings
type Profile interface {
	AddBookmark(url, title string) error
	RemoveBookmark(url string) (bool, error)
	ListBookmarks() ([]models.Bookmark, error)

	SetSetting(key, value string) error
	DeleteSetting(key string) error
	ListSettings() ([]models.Setting, error)
}

// DoNotTracker is implemented by fetchers that can ask sites not to track
type DoNotTracker interface {
	SetDoNotTrack(enabled bool)
}

// Setting normalizers, keyed by setting name. Each returns the stored form of a value.
var settingNormalizers = map[string]func(string) (string, error){
	db.SettingSearchURL:  normalizeSearchURL,
	db.SettingDoNotTrack: normalizeSwitch,
}

// SettingKeys returns the settings the browser understands, sorted
func SettingKeys() []string {
	keys := make([]string, 0, len(settingNormalizers))
	for k := range settingNormalizers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalizeSearchURL(v string) (string, error) {
	v = strings.TrimSpace(v)
	lower := strings.ToLower(v)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", fmt.Errorf("search URL must start with http:// or https://, got %q", v)
	}
	if strings.Count(v, "%s") != 1 {
		return "", fmt.Errorf("search URL must contain %%s exactly once, got %q", v)
	}
	return v, nil
}

func normalizeSwitch(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "on", "true", "yes":
		return "1", nil
	case "0", "off", "false", "no":
		return "0", nil
	}
	return "", fmt.Errorf("expected on or off, got %q", v)
}

// SetProfile attaches bookmark and settings storage and applies the saved settings.
// Saved values that no longer validate are skipped.
func (c *Controller) SetProfile(p Profile) error {
	c.profile = p

	settings, err := p.ListSettings()
	if err != nil {
		return err
	}
	for _, s := range settings {
		if _, err := c.applySetting(s.Key, s.Value); err != nil && c.logger != nil {
			c.logger.Warn("Ignoring saved setting", "key", s.Key, "err", err)
		}
	}
	return nil
}

// applySetting validates value and makes it take effect for this session
func (c *Controller) applySetting(key, value string) (string, error) {
	normalize, ok := settingNormalizers[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	value, err := normalize(value)
	if err != nil {
		return "", err
	}

	switch key {
	case db.SettingSearchURL:
		c.searchURL = value
	case db.SettingDoNotTrack:
		c.doNotTrack = value == "1"
		if d, ok := c.fetcher.(DoNotTracker); ok {
			d.SetDoNotTrack(c.doNotTrack)
		}
	}
	return value, nil
}

// Set saves a setting and applies it immediately. It returns the stored value.
func (c *Controller) Set(key, value string) (string, error) {
	if c.profile == nil {
		return "", ErrNoProfile
	}
	key = strings.ToLower(strings.TrimSpace(key))

	normalize, ok := settingNormalizers[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	value, err := normalize(value)
	if err != nil {
		return "", err
	}

	if err := c.profile.SetSetting(key, value); err != nil {
		return "", err
	}
	if _, err := c.applySetting(key, value); err != nil {
		return "", err
	}
	if c.logger != nil {
		c.logger.Info("Setting saved", "key", key, "value", value)
	}
	return value, nil
}

// Unset removes a saved setting and returns to the configured default
func (c *Controller) Unset(key string) error {
	if c.profile == nil {
		return ErrNoProfile
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := settingNormalizers[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	if err := c.profile.DeleteSetting(key); err != nil {
		return err
	}

	switch key {
	case db.SettingSearchURL:
		c.searchURL = c.defaultSearchURL
	case db.SettingDoNotTrack:
		c.doNotTrack = false
		if d, ok := c.fetcher.(DoNotTracker); ok {
			d.SetDoNotTrack(false)
		}
	}
	if c.logger != nil {
		c.logger.Info("Setting reset", "key", key)
	}
	return nil
}

// Settings returns the effective value of every known setting. UpdatedAt is
// zero for settings that were never saved.
func (c *Controller) Settings() ([]models.Setting, error) {
	saved := make(map[string]models.Setting)
	if c.profile != nil {
		stored, err := c.profile.ListSettings()
		if err != nil {
			return nil, err
		}
		for _, s := range stored {
			saved[s.Key] = s
		}
	}

	keys := SettingKeys()
	out := make([]models.Setting, 0, len(keys))
	for _, key := range keys {
		s := models.Setting{Key: key}
		switch key {
		case db.SettingSearchURL:
			s.Value = c.searchURL
		case db.SettingDoNotTrack:
			s.Value = "0"
			if c.doNotTrack {
				s.Value = "1"
			}
		}
		if stored, ok := saved[key]; ok {
			s.UpdatedAt = stored.UpdatedAt
		}
		out = append(out, s)
	}
	return out, nil
}

// Bookmark saves the current page. An empty title uses the page title.
func (c *Controller) Bookmark(title string) (models.Bookmark, error) {
	if c.profile == nil {
		return models.Bookmark{}, ErrNoProfile
	}
	current, ok := c.navigator.Current()
	if !ok {
		return models.Bookmark{}, ErrNoCurrentPage
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = current.TitleOr("")
	}
	if err := c.profile.AddBookmark(current.URL, title); err != nil {
		return models.Bookmark{}, err
	}
	if c.logger != nil {
		c.logger.Info("Bookmark saved", "url", current.URL, "title", title)
	}
	return models.Bookmark{URL: current.URL, Title: title}, nil
}

// Bookmarks returns the saved bookmarks in display order
func (c *Controller) Bookmarks() ([]models.Bookmark, error) {
	if c.profile == nil {
		return nil, ErrNoProfile
	}
	return c.profile.ListBookmarks()
}

// Unbookmark removes a bookmark by its list number or URL. An empty ref
// means the current page. It returns the URL it removed.
func (c *Controller) Unbookmark(ref string) (string, error) {
	if c.profile == nil {
		return "", ErrNoProfile
	}

	target, err := c.bookmarkURL(ref)
	if err != nil {
		return "", err
	}
	removed, err := c.profile.RemoveBookmark(target)
	if err != nil {
		return target, err
	}
	if !removed {
		return target, fmt.Errorf("%w: %s", ErrNoBookmark, target)
	}
	if c.logger != nil {
		c.logger.Info("Bookmark removed", "url", target)
	}
	return target, nil
}

// OpenBookmark navigates to bookmark number n (1-based, as listed)
func (c *Controller) OpenBookmark(ctx context.Context, n int) (Page, error) {
	if c.profile == nil {
		return Page{}, ErrNoProfile
	}
	bookmarks, err := c.profile.ListBookmarks()
	if err != nil {
		return Page{}, err
	}
	if n < 1 || n > len(bookmarks) {
		return Page{}, fmt.Errorf("%w: #%d", ErrNoBookmark, n)
	}
	return c.Open(ctx, bookmarks[n-1].URL)
}

// bookmarkURL turns a list number, URL or empty ref into a bookmarked URL
func (c *Controller) bookmarkURL(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		current, ok := c.navigator.Current()
		if !ok {
			return "", ErrNoCurrentPage
		}
		return current.URL, nil
	}

	if n, err := strconv.Atoi(ref); err == nil {
		bookmarks, err := c.profile.ListBookmarks()
		if err != nil {
			return "", err
		}
		if n < 1 || n > len(bookmarks) {
			return "", fmt.Errorf("%w: #%d", ErrNoBookmark, n)
		}
		return bookmarks[n-1].URL, nil
	}
	return ref, nil
}
