package urltools

import (
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Parts is the public-suffix decomposition of a hostname.
// "mail.example.co.uk" -> {Subdomain: "mail", Domain: "example", Suffix: "co.uk"}.
type Parts struct {
	Subdomain string
	Domain    string
	Suffix    string
}

// Registrable returns the registrable domain ("example.co.uk"), the key
// used for whitelist lookups and same-site comparisons. Empty when the
// host had no domain at all.
func (p Parts) Registrable() string {
	if p.Domain == "" {
		return ""
	}
	if p.Suffix == "" {
		return p.Domain
	}
	return p.Domain + "." + p.Suffix
}

// Extract decomposes the host of a URL into subdomain/domain/suffix using
// the public suffix list (ICANN section only). Hosts with no recognized
// suffix keep the last label as domain with an empty suffix; IP-literal
// hosts become the domain verbatim.
func Extract(raw string) Parts {
	host := strings.ToLower(Host(raw))
	host = strings.TrimSuffix(host, ".")

	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")

	if host == "" {
		return Parts{}
	}
	if net.ParseIP(host) != nil {
		return Parts{Domain: host}
	}

	suffix, icann := publicsuffix.PublicSuffix(host)
	if !icann && strings.Contains(suffix, ".") {
		// Private-section suffix (e.g. github.io); training data was built
		// against ICANN suffixes only, so keep just the last label.
		suffix = suffix[strings.LastIndexByte(suffix, '.')+1:]
		icann = true
	}

	if !icann {
		// Unrecognized suffix ("localhost", "foo.bar"): suffix length 0,
		// last label becomes the domain.
		return splitDomain(host, "")
	}

	if host == suffix {
		return Parts{Suffix: suffix}
	}

	return splitDomain(strings.TrimSuffix(host, "."+suffix), suffix)
}

func splitDomain(rest, suffix string) Parts {
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		return Parts{Subdomain: rest[:i], Domain: rest[i+1:], Suffix: suffix}
	}
	return Parts{Domain: rest, Suffix: suffix}
}
