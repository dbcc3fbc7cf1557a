// Package hostname extracts and normalizes the domain part of navigation targets.
package hostname

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// ErrEmptyHost is returned when a URL or domain has no host component
var ErrEmptyHost = errors.New("no domain in input")

// Extract returns the normalized domain of a URL or bare hostname.
// Examples:
//   - "https://Example.COM:8443/path?q=1" -> "example.com"
//   - "evil.test/page" -> "evil.test"
//   - "sub.evil.test." -> "sub.evil.test"
func Extract(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyHost
	}

	// Bare hosts parse as paths, give them a scheme first
	if !strings.Contains(input, "://") {
		input = "http://" + input
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	return Normalize(parsed.Hostname())
}

// Normalize lowercases a host, strips a trailing dot and converts
// internationalized names to their ASCII form.
func Normalize(host string) (string, error) {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", ErrEmptyHost
	}

	// Hosts IDNA rejects (underscores, IPv6 literals) are kept in lowercase form
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		host = ascii
	}
	return host, nil
}

// Root returns the registrable domain (eTLD+1) of a host.
// Uses publicsuffix to handle complex TLDs like .co.uk; IP addresses and
// single-label hosts are returned unchanged.
func Root(host string) string {
	if net.ParseIP(host) != nil {
		return host
	}
	root, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return root
}
