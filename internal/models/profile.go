package models

import "time"

// Bookmark is a page the user saved
type Bookmark struct {
	URL     string
	Title   string // may be empty
	AddedAt time.Time
}

// TitleOr returns the title or fallback when the bookmark has none
func (b Bookmark) TitleOr(fallback string) string {
	if b.Title == "" {
		return fallback
	}
	return b.Title
}

// Setting is one stored user preference
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
