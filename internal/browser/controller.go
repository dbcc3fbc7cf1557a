// Package browser ties the firewall, page fetcher, recorder and session
// history together behind the commands the prompt understands.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/misbah7172/Custom-Browser/internal/firewall"
	"github.com/misbah7172/Custom-Browser/internal/hostname"
	"github.com/misbah7172/Custom-Browser/internal/models"
	"github.com/misbah7172/Custom-Browser/internal/navigator"
	"github.com/misbah7172/Custom-Browser/internal/recorder"
)

// ErrEmptyInput is returned by Open when there is nothing to navigate to
var ErrEmptyInput = errors.New("nothing to open")

// Fetcher loads a page. Failures are reported inside the outcome.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) models.FetchOutcome
}

// Page is the result of opening a URL
type Page struct {
	URL      string              // URL actually navigated to, after search/scheme handling
	Visit    *models.VisitRecord // nil when blocked
	Fetch    models.FetchOutcome
	Blocked  bool
	Domain   string  // domain the firewall matched on
	Warnings []error // non-fatal recorder problems
}

// Controller runs browser commands for one session
type Controller struct {
	firewall  *firewall.Firewall
	recorder  *recorder.Recorder
	navigator *navigator.Navigator
	fetcher   Fetcher
	profile   Profile // nil until SetProfile
	logger    *log.Logger

	searchURL        string
	defaultSearchURL string // restored when the saved search URL is unset
	doNotTrack       bool
}

// NewController creates a controller with an empty session
func NewController(fw *firewall.Firewall, rec *recorder.Recorder, fetcher Fetcher, logger *log.Logger) *Controller {
	return &Controller{
		firewall:  fw,
		recorder:  rec,
		navigator: navigator.New(rec, logger),
		fetcher:   fetcher,
		logger:    logger,

		searchURL:        DefaultSearchURL,
		defaultSearchURL: DefaultSearchURL,
	}
}

// SetSearchURL sets the configured %s template used for search terms.
// A search URL saved in the profile takes precedence once SetProfile runs.
func (c *Controller) SetSearchURL(template string) {
	if template != "" {
		c.searchURL = template
		c.defaultSearchURL = template
	}
}

// Open navigates to input. Blocked sites are rejected before anything is
// fetched, so they are never contacted.
func (c *Controller) Open(ctx context.Context, input string) (Page, error) {
	target := PrepareURL(input, c.searchURL)
	if target == "" {
		return Page{}, ErrEmptyInput
	}
	page := Page{URL: target}

	decision, err := c.firewall.Check(target)
	if err != nil {
		return page, err
	}
	page.Domain = decision.Domain
	if decision.Denied() {
		page.Blocked = true
		return page, nil
	}

	if c.fetcher != nil {
		page.Fetch = c.fetcher.Fetch(ctx, target)
	}

	out, err := c.navigator.Navigate(ctx, target, page.Fetch)
	if err != nil {
		return page, err
	}
	// The domain can be blocked while the page was loading
	if out.Denied() {
		page.Blocked = true
		page.Domain = out.Decision.Domain
		return page, nil
	}

	page.Visit = out.Visit
	page.Warnings = out.Warnings
	if c.logger != nil {
		c.logger.Info("Opened page", "url", target, "status", page.Fetch.StatusCode, "warnings", len(out.Warnings))
	}
	return page, nil
}

// Back moves one entry back in the session
func (c *Controller) Back() (models.VisitRecord, error) {
	return c.navigator.Back()
}

// Forward moves one entry forward in the session
func (c *Controller) Forward() (models.VisitRecord, error) {
	return c.navigator.Forward()
}

// Current returns the page under the session cursor
func (c *Controller) Current() (models.VisitRecord, bool) {
	return c.navigator.Current()
}

// Session returns the session entries and the cursor position
func (c *Controller) Session() ([]models.VisitRecord, int) {
	return c.navigator.Entries(), c.navigator.Position()
}

// History returns the whole durable visit log
func (c *Controller) History() ([]models.VisitRecord, error) {
	return c.recorder.ListVisitHistory()
}

// Visits returns the last limit visits, all of them when limit <= 0
func (c *Controller) Visits(limit int) ([]models.VisitRecord, error) {
	return c.recorder.RecentVisits(limit)
}

// SiteStats counts visits per registrable domain, most visited first.
// It also returns the number of visits counted.
func (c *Controller) SiteStats() ([]models.SiteStats, int, error) {
	visits, err := c.recorder.ListVisitHistory()
	if err != nil {
		return nil, 0, err
	}
	stats, total := ComputeSiteStats(visits)
	return stats, total, nil
}

// ComputeSiteStats groups visits by registrable domain.
// Visits whose URL has no host are not counted.
func ComputeSiteStats(visits []models.VisitRecord) ([]models.SiteStats, int) {
	bySite := make(map[string]*models.SiteStats)
	total := 0
	for _, v := range visits {
		host, err := hostname.Extract(v.URL)
		if err != nil {
			continue
		}
		site := hostname.Root(host)
		s, ok := bySite[site]
		if !ok {
			s = &models.SiteStats{Site: site}
			bySite[site] = s
		}
		s.Visits++
		if v.Timestamp.After(s.LastVisit) {
			s.LastVisit = v.Timestamp
		}
		total++
	}

	stats := make([]models.SiteStats, 0, len(bySite))
	for _, s := range bySite {
		if total > 0 {
			s.Percentage = float64(s.Visits) / float64(total) * 100
		}
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Visits != stats[j].Visits {
			return stats[i].Visits > stats[j].Visits
		}
		return stats[i].Site < stats[j].Site
	})
	return stats, total
}

// Block adds a domain to the firewall and returns it normalized
func (c *Controller) Block(input, reason string) (string, error) {
	return c.firewall.Block(input, reason)
}

// Unblock removes a domain from the firewall and reports whether it was blocked
func (c *Controller) Unblock(input string) (string, bool, error) {
	domain, err := hostname.Extract(input)
	if err != nil {
		return "", false, err
	}
	decision, err := c.firewall.Check(domain)
	if err != nil {
		return domain, false, err
	}
	if _, err := c.firewall.Unblock(domain); err != nil {
		return domain, false, err
	}
	return domain, decision.Denied(), nil
}

// Blocklist returns all firewall entries sorted by domain
func (c *Controller) Blocklist() ([]models.BlockEntry, error) {
	return c.firewall.Entries()
}

// ClearHistory deletes the durable visit log. The session is kept.
func (c *Controller) ClearHistory() (int64, error) {
	n, err := c.recorder.ClearHistory()
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return n, nil
}
