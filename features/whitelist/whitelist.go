package whitelist

import (
	"phishdetect/features/urltools"

	"github.com/rs/zerolog/log"
)

// defaultDomains are the built-in trusted registrable domains, used when
// the config does not override the set. Guards against false positives on
// major sites.
var defaultDomains = []string{
	"google.com",
	"wikipedia.org",
	"youtube.com",
	"facebook.com",
	"amazon.com",
	"apple.com",
	"microsoft.com",
	"nytimes.com",
	"github.com",
}

// Whitelist is a static set of trusted registrable domains, fixed at
// process start and read-only afterwards, so concurrent request workers
// need no locking.
type Whitelist struct {
	domains map[string]struct{}
}

// New builds a whitelist from the configured domains, falling back to the
// built-in set when the list is empty.
func New(domains []string) *Whitelist {
	if len(domains) == 0 {
		domains = defaultDomains
	}

	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		set[d] = struct{}{}
	}

	log.Debug().Int("domains", len(set)).Msg("Trust whitelist initialized")
	return &Whitelist{domains: set}
}

// Contains reports whether the URL's registrable domain is trusted.
// Decomposition failure must never block the request: it logs and reports
// false so the URL falls through to full scoring.
func (w *Whitelist) Contains(rawURL string) bool {
	registrable := urltools.Extract(rawURL).Registrable()
	if registrable == "" {
		log.Debug().Str("url", rawURL).Msg("Could not derive registrable domain for whitelist check")
		return false
	}

	_, ok := w.domains[registrable]
	return ok
}
