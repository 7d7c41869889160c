// Package fetcher extracts readable article text and lead images from
// publisher pages for the feed ingest.
package fetcher

import (
	"fmt"
	"net"
	"net/url"

	"content-api/internal/usecase/ingest"
)

// validateURL rejects anything but absolute http(s) URLs. When denyPrivateIPs
// is set the host is resolved and every address must be public, so a feed
// cannot point the crawler at the internal network.
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ingest.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ingest.ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ingest.ErrInvalidURL)
	}
	if !denyPrivateIPs {
		return nil
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ingest.ErrInvalidURL, hostname, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to private IP %s", ingest.ErrPrivateIP, hostname, ip.String())
		}
	}
	return nil
}

// isPrivateIP reports loopback, RFC 1918 / RFC 4193 private and link-local addresses.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
