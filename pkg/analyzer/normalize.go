package analyzer

import (
	"net/url"
	"strings"
)

// NormalizeURL ensures the raw scan payload has a scheme so it can be parsed
// as a URL. Anything that is not already http(s) gets https prepended; there
// is no error path, any string becomes a candidate URL.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

// hostOf extracts the lowercased host from a URL string. Returns "" when the
// URL does not parse; callers treat a missing host as no signal.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// schemeOf extracts the scheme from a URL string, "" when unparseable.
func schemeOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Scheme
}
