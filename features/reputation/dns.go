package reputation

import (
	"context"

	"phishdetect/internal/collector"

	"github.com/miekg/dns"
	"github.com/rs/zerolog/log"
)

// dnsRecordExists reports 1 when the registrable domain resolves to at
// least one A record. Resolution failure is a feature value of 0, not an
// error.
func (e *Extractor) dnsRecordExists(ctx context.Context, registrable string) float64 {
	if registrable == "" {
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.DNSTimeout)
	defer cancel()

	client := &dns.Client{Timeout: e.cfg.DNSTimeout}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(registrable), dns.TypeA)

	in, _, err := client.ExchangeContext(ctx, msg, e.cfg.DNSResolver)
	if err != nil {
		collector.IncDegradation("dns")
		log.Debug().Err(err).Str("domain", registrable).Msg("DNS lookup failed")
		return 0
	}

	if len(in.Answer) == 0 {
		return 0
	}
	return 1
}
