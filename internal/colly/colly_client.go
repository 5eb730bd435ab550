package colly

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	"phishdetect/internal/config"

	"github.com/gocolly/colly/v2"
)

// NewPageCollector builds a synchronous, single-page collector configured
// from the fetcher settings. Collectors accumulate callbacks, so callers
// create one per fetch instead of sharing a singleton. TLS verification is
// off on purpose: phishing pages routinely sit behind broken certificates
// and we still want their HTML features.
func NewPageCollector() *colly.Collector {
	cfg := config.GetConfig().Fetcher

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.MaxBodySize(cfg.MaxSize),
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
		colly.UserAgent(cfg.UserAgent),
	)
	c.SetRequestTimeout(cfg.TimeOut)
	c.WithTransport(&http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	})

	maxRedirects := cfg.MaxRedirects
	c.SetRedirectHandler(func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	})

	return c
}

// Fetch visits a single URL and returns the response body. Non-2xx
// statuses and transport failures surface as errors for the caller's
// sentinel policy to absorb.
func Fetch(rawURL string) ([]byte, error) {
	c := NewPageCollector()

	var body []byte
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		body = make([]byte, len(r.Body))
		copy(body, r.Body)
	})
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(rawURL); err != nil {
		return nil, err
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if body == nil {
		return nil, errors.New("empty response body")
	}
	return body, nil
}
