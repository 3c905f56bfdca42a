package domain

import (
	"net/url"
	"strings"
)

// HostOf extracts the lowercase host from a URL string, dropping any "www."
// prefix so that both "https://www.example.com/a" and "example.com/b" key
// the same site. Inputs that do not parse fall back to the raw string.
func HostOf(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Hostname() == "" {
		// Bare hosts like "example.com/path" parse with an empty Host.
		parsed, err = url.Parse("https://" + trimmed)
		if err != nil || parsed.Hostname() == "" {
			return strings.ToLower(trimmed)
		}
	}

	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}
