package models

import "time"

// VisitRecord is one accepted navigation in the durable visit log.
// Records are created once by the recorder and never modified afterwards.
type VisitRecord struct {
	ID        int64     // Row id assigned by the store (0 until persisted)
	URL       string    // Destination as navigated
	Title     *string   // nullable - set when the fetch produced a title
	Address   *string   // nullable - resolved network address, nil on resolution failure
	Location  *string   // nullable - only set when a locator is configured
	Timestamp time.Time // Creation time, non-decreasing in insertion order
}

// TitleOr returns the title or fallback when the record has none
func (v VisitRecord) TitleOr(fallback string) string {
	if v.Title == nil || *v.Title == "" {
		return fallback
	}
	return *v.Title
}

// AddressOr returns the resolved address or fallback when resolution failed
func (v VisitRecord) AddressOr(fallback string) string {
	if v.Address == nil {
		return fallback
	}
	return *v.Address
}

// LocationOr returns the location or fallback when none was recorded
func (v VisitRecord) LocationOr(fallback string) string {
	if v.Location == nil {
		return fallback
	}
	return *v.Location
}

// BlockEntry is a single firewall rule
type BlockEntry struct {
	Domain    string // Normalized host (lowercase, no scheme/path/port)
	Reason    string
	BlockedAt time.Time
}

// FetchOutcome is what the page transport reports back for a navigation
type FetchOutcome struct {
	OK          bool
	Title       string // Empty when the page had no title
	StatusCode  int
	ContentType string
	Links       []PageLink // First links found on an HTML page
	TotalLinks  int        // Links on the page, including the ones not kept in Links
	Err         error
}

// PageLink is an anchor found on a fetched page, with its target made absolute
type PageLink struct {
	Text string
	URL  string
}

// TitlePtr returns the title as a nullable value for a VisitRecord
func (f FetchOutcome) TitlePtr() *string {
	if f.Title == "" {
		return nil
	}
	title := f.Title
	return &title
}

// SiteStats holds visit statistics for a registrable domain
type SiteStats struct {
	Site       string
	Visits     int
	LastVisit  time.Time
	Percentage float64
}
