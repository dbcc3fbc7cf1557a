package api

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
)

// DNSResolver resolves domains with the system resolver
type DNSResolver struct {
	resolver *net.Resolver
	timeout  time.Duration // 0 means wait as long as the caller's context allows
	logger   *log.Logger
}

// NewDNSResolver creates a resolver that gives up after timeout
func NewDNSResolver(timeout time.Duration, logger *log.Logger) *DNSResolver {
	return &DNSResolver{
		resolver: net.DefaultResolver,
		timeout:  timeout,
		logger:   logger,
	}
}

// Resolve returns one address for domain, preferring IPv4.
// IP literals are returned unchanged without a lookup.
func (r *DNSResolver) Resolve(ctx context.Context, domain string) (string, error) {
	if ip := net.ParseIP(domain); ip != nil {
		return ip.String(), nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	addrs, err := r.resolver.LookupIPAddr(ctx, domain)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", domain, err)
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("failed to resolve %s: no addresses", domain)
	}

	chosen := addrs[0].IP
	for _, a := range addrs {
		if a.IP.To4() != nil {
			chosen = a.IP
			break
		}
	}

	if r.logger != nil {
		r.logger.Debug("Resolved domain", "domain", domain, "address", chosen.String(), "candidates", len(addrs), "took", time.Since(start))
	}
	return chosen.String(), nil
}
