package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// OriginChecker validates browser Origin headers against a configured
// allow-list. Entries are compared in normalized form (lowercased scheme
// and host, default ports stripped), and "*" allows any origin.
type OriginChecker struct {
	allowAll bool
	allowed  map[string]struct{}
}

// NewOriginChecker builds a checker from configured origin strings.
// Malformed entries are dropped.
func NewOriginChecker(origins []string) *OriginChecker {
	c := &OriginChecker{allowed: make(map[string]struct{})}
	for _, o := range origins {
		if o == "*" {
			c.allowAll = true
			continue
		}
		if n, ok := normalizeOrigin(o); ok {
			c.allowed[n] = struct{}{}
		}
	}
	return c
}

// Check reports whether the request's Origin header is acceptable.
// Requests without an Origin header (non-browser clients) are allowed;
// browsers always send one on cross-origin WebSocket handshakes.
func (c *OriginChecker) Check(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if c.allowAll {
		return true
	}
	n, ok := normalizeOrigin(origin)
	if !ok {
		return false
	}
	_, allowed := c.allowed[n]
	return allowed
}

// normalizeOrigin reduces an origin to scheme://host[:port] with the
// default port for the scheme stripped, so "https://a.example:443" and
// "https://a.example" compare equal.
func normalizeOrigin(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	if u.Path != "" && u.Path != "/" {
		return "", false
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}

	port := u.Port()
	if port != "" {
		n, err := strconv.ParseUint(port, 10, 16)
		if err != nil || n == 0 {
			return "", false
		}
		if (scheme == "http" && n == 80) || (scheme == "https" && n == 443) {
			port = ""
		}
	}

	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		host = host + ":" + port
	}
	return scheme + "://" + host, true
}
