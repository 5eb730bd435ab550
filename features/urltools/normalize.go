package urltools

import (
	"net/url"
	"strings"
)

// Normalize canonicalizes a URL for the extended extraction pipeline:
// lower-cased, https scheme defaulted, www. host prefix stripped, trailing
// slash on the path stripped, query preserved. Port, fragment and userinfo
// are dropped. Normalizing an already-normalized URL is a no-op.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return s
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	path := strings.TrimRight(u.Path, "/")

	normalized := u.Scheme + "://" + host + path
	if u.RawQuery != "" {
		normalized += "?" + u.RawQuery
	}

	return normalized
}

// Parse never fails: a URL that cannot be parsed degrades to the zero URL,
// so downstream feature slots get deterministic (if degenerate) values
// instead of errors.
func Parse(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}

// Host returns the best-effort network location of a URL. Schemeless inputs
// like "example.com/path" have no parseable host, so we fall back to the
// text before the first slash the way tldextract-style extractors do.
func Host(raw string) string {
	u := Parse(raw)
	if u.Host != "" {
		return u.Host
	}

	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
