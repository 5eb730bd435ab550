package reputation

import (
	"context"
	"crypto/tls"
	"net"
	"strings"

	"phishdetect/internal/collector"

	"github.com/rs/zerolog/log"
)

// sslCertificateValid is 0 outright for non-https URLs; otherwise 1 iff a
// verifying TLS handshake to port 443 retrieves a certificate within the
// timeout. Any failure is the feature value 0, never an error.
func (e *Extractor) sslCertificateValid(ctx context.Context, scheme, host string) float64 {
	if scheme != "https" {
		return 0
	}

	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if host == "" {
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.TLSTimeout)
	defer cancel()

	dialer := &net.Dialer{Timeout: e.cfg.TLSTimeout}
	rawConn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, "443"))
	if err != nil {
		collector.IncDegradation("tls")
		log.Debug().Err(err).Str("host", host).Msg("TLS dial failed")
		return 0
	}
	defer rawConn.Close()

	tlsConn := tls.Client(rawConn, &tls.Config{ServerName: host})
	defer tlsConn.Close()

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		collector.IncDegradation("tls")
		log.Debug().Err(err).Str("host", host).Msg("TLS handshake failed")
		return 0
	}

	if len(tlsConn.ConnectionState().PeerCertificates) == 0 {
		return 0
	}
	return 1
}
