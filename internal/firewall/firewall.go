// Package firewall decides whether a navigation target may be visited.
//
// Matching is exact on the normalized domain: blocking example.com does not
// block sub.example.com. Broader blocking takes one entry per host.
package firewall

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/misbah7172/Custom-Browser/internal/hostname"
	"github.com/misbah7172/Custom-Browser/internal/models"
)

// DefaultReason is recorded when a domain is blocked without a reason
const DefaultReason = "Manually blocked"

// Store is the persistence the firewall needs
type Store interface {
	AddBlock(domain, reason string) error
	RemoveBlock(domain string) error
	ListBlocked() ([]models.BlockEntry, error)
	IsBlocked(domain string) (bool, error)
}

// Decision is the outcome of checking a URL against the blocklist
type Decision struct {
	Allowed bool
	Domain  string // normalized domain that was checked
}

// Denied reports whether the navigation must be aborted
func (d Decision) Denied() bool { return !d.Allowed }

// Firewall holds the blocklist gate
type Firewall struct {
	store  Store
	logger *log.Logger
}

// New creates a firewall backed by store. logger may be nil.
func New(store Store, logger *log.Logger) *Firewall {
	return &Firewall{
		store:  store,
		logger: logger,
	}
}

// Check returns Allowed unless the URL's domain has an exact blocklist entry.
// Errors are returned for unparseable URLs and blocklist read failures.
func (f *Firewall) Check(rawURL string) (Decision, error) {
	domain, err := hostname.Extract(rawURL)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to extract domain from %q: %w", rawURL, err)
	}

	blocked, err := f.store.IsBlocked(domain)
	if err != nil {
		return Decision{Domain: domain}, err
	}

	if blocked {
		if f.logger != nil {
			f.logger.Info("Navigation denied", "domain", domain, "url", rawURL)
		}
		return Decision{Allowed: false, Domain: domain}, nil
	}
	return Decision{Allowed: true, Domain: domain}, nil
}

// Block adds a domain (or the domain of a URL) to the blocklist.
// Blocking an already blocked domain leaves the existing entry untouched.
func (f *Firewall) Block(input, reason string) (string, error) {
	domain, err := hostname.Extract(input)
	if err != nil {
		return "", err
	}
	if reason == "" {
		reason = DefaultReason
	}

	if err := f.store.AddBlock(domain, reason); err != nil {
		return "", err
	}

	if f.logger != nil {
		f.logger.Info("Domain blocked", "domain", domain, "reason", reason)
	}
	return domain, nil
}

// Unblock removes a domain from the blocklist. Unknown domains are not an error.
func (f *Firewall) Unblock(input string) (string, error) {
	domain, err := hostname.Extract(input)
	if err != nil {
		return "", err
	}

	if err := f.store.RemoveBlock(domain); err != nil {
		return "", err
	}

	if f.logger != nil {
		f.logger.Info("Domain unblocked", "domain", domain)
	}
	return domain, nil
}

// ListBlocked returns the blocked domains in sorted order
func (f *Firewall) ListBlocked() ([]string, error) {
	entries, err := f.store.ListBlocked()
	if err != nil {
		return nil, err
	}

	domains := make([]string, 0, len(entries))
	for _, e := range entries {
		domains = append(domains, e.Domain)
	}
	return domains, nil
}

// Entries returns the full blocklist including reasons and block times
func (f *Firewall) Entries() ([]models.BlockEntry, error) {
	return f.store.ListBlocked()
}
