package reputation

import (
	"context"

	"phishdetect/features/model"
	"phishdetect/features/urltools"
	"phishdetect/internal/config"
)

// Extractor derives domain-age, DNS and TLS reputation features. The three
// lookups are independent: each carries its own timeout and its own
// sentinel, so one registry being down never blanks the other two slots.
type Extractor struct {
	cfg config.ReputationConfig
}

func NewExtractor(cfg *config.ReputationConfig) *Extractor {
	return &Extractor{cfg: *cfg}
}

// Features never returns an error; every sub-lookup resolves locally to
// its documented fallback value.
func (e *Extractor) Features(ctx context.Context, rawURL string) model.FeatureMap {
	registrable := urltools.Extract(rawURL).Registrable()
	scheme := urltools.Parse(rawURL).Scheme
	host := urltools.Host(rawURL)

	return model.FeatureMap{
		"domain_age":            e.domainAge(ctx, registrable),
		"dns_record_exists":     e.dnsRecordExists(ctx, registrable),
		"ssl_certificate_valid": e.sslCertificateValid(ctx, scheme, host),
	}
}
