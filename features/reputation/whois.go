package reputation

import (
	"context"
	"strings"
	"time"

	"phishdetect/features/model"
	"phishdetect/internal/collector"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/rs/zerolog/log"
)

var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// domainAge returns the registrable domain's age in days, or the sentinel
// when the registry lookup fails, times out, or reports no creation date.
// Some registries list several creation dates; the first listed one wins.
func (e *Extractor) domainAge(ctx context.Context, registrable string) (age float64) {
	age = model.Sentinel
	if registrable == "" {
		return age
	}

	// The whois parser is known to panic on exotic registry responses.
	defer func() {
		if r := recover(); r != nil {
			collector.IncDegradation("whois")
			log.Debug().Interface("panic", r).Str("domain", registrable).Msg("Recovered from whois parser panic")
			age = model.Sentinel
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, e.cfg.WhoisTimeout)
	defer cancel()

	type whoisResult struct {
		raw string
		err error
	}
	resultChan := make(chan whoisResult, 1)

	go func() {
		raw, err := whois.Whois(registrable)
		resultChan <- whoisResult{raw: raw, err: err}
	}()

	var raw string
	select {
	case <-ctx.Done():
		collector.IncDegradation("whois")
		return model.Sentinel
	case res := <-resultChan:
		if res.err != nil {
			collector.IncDegradation("whois")
			log.Debug().Err(res.err).Str("domain", registrable).Msg("Whois lookup failed")
			return model.Sentinel
		}
		raw = res.raw
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		collector.IncDegradation("whois")
		log.Debug().Err(err).Str("domain", registrable).Msg("Whois parse failed")
		return model.Sentinel
	}

	created, ok := firstCreationDate(parsed.Domain.CreatedDate)
	if !ok {
		collector.IncDegradation("whois")
		return model.Sentinel
	}

	return float64(int(time.Since(created).Hours() / 24))
}

// firstCreationDate parses a registry creation-date field. Registries that
// return several dates separate them with whitespace or commas; the first
// parseable one in listed order is used.
func firstCreationDate(field string) (time.Time, bool) {
	for _, candidate := range strings.FieldsFunc(field, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\t'
	}) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		for _, layout := range whoisDateLayouts {
			t, err := time.Parse(layout, candidate)
			if err != nil {
				continue
			}
			return t, true
		}
	}

	return time.Time{}, false
}
