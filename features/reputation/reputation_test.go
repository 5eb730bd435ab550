package reputation

import (
	"testing"
	"time"

	"phishdetect/features/model"
	"phishdetect/internal/config"
	"phishdetect/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractor() *Extractor {
	// Unroutable resolver and tight timeouts: every lookup fails fast and
	// deterministically.
	return NewExtractor(&config.ReputationConfig{
		WhoisTimeout: 50 * time.Millisecond,
		DNSResolver:  "127.0.0.1:1",
		DNSTimeout:   50 * time.Millisecond,
		TLSTimeout:   50 * time.Millisecond,
	})
}

func TestFeaturesCompleteOnTotalFailure(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	feats := testExtractor().Features(ctx, "http://unreachable.invalid/login")

	assert.Equal(t, float64(model.Sentinel), feats["domain_age"])
	assert.Equal(t, 0.0, feats["dns_record_exists"])
	assert.Equal(t, 0.0, feats["ssl_certificate_valid"], "non-https scheme short-circuits to 0")
}

func TestSSLCertificateValidRequiresHTTPS(t *testing.T) {
	_, err := utils.Initialize(t)
	require.NoError(t, err)

	e := testExtractor()
	assert.Equal(t, 0.0, e.sslCertificateValid(t.Context(), "http", "example.com"))
	assert.Equal(t, 0.0, e.sslCertificateValid(t.Context(), "https", ""))
}

func TestDNSRecordExistsFailureIsZero(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	e := testExtractor()
	assert.Equal(t, 0.0, e.dnsRecordExists(ctx, "example.com"), "unreachable resolver degrades to 0")
	assert.Equal(t, 0.0, e.dnsRecordExists(ctx, ""))
}

func TestDomainAgeEmptyRegistrable(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	assert.Equal(t, float64(model.Sentinel), testExtractor().domainAge(ctx, ""))
}

func TestFirstCreationDate(t *testing.T) {
	cases := []struct {
		name  string
		field string
		want  string
		ok    bool
	}{
		{"rfc3339", "1997-09-15T04:00:00Z", "1997-09-15", true},
		{"date only", "1997-09-15", "1997-09-15", true},
		{"registrar style", "15-Sep-1997", "1997-09-15", true},
		{"multiple dates first listed wins", "2003-01-01,\t1997-09-15T04:00:00Z", "2003-01-01", true},
		{"first entry unparseable falls through", "someday,\t1997-09-15", "1997-09-15", true},
		{"unparseable", "someday soon", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := firstCreationDate(tc.field)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got.Format("2006-01-02"))
			}
		})
	}
}
