package webpage

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"time"

	"phishdetect/features/model"
	"phishdetect/features/urltools"
	"phishdetect/internal/collector"
	ic "phishdetect/internal/colly"
	"phishdetect/internal/config"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// countSlots lists every fetch-dependent slot. On any fetch or parse
// failure the whole group resolves to the sentinel together; partial page
// feature sets would be indistinguishable from real counts.
var countSlots = []string{
	"num_script",
	"num_form",
	"num_iframe",
	"num_links",
	"num_external_links",
	"num_hidden_inputs",
	"num_password_inputs",
	"external_form_action",
	"right_click_disabled",
	"popup_window",
	"eval_js_count",
}

// Extractor derives structural and script features from the page a URL
// points to. It performs one outbound fetch per call and never returns an
// error upward: failures degrade to the sentinel slot set.
type Extractor struct {
	retries int
	pause   time.Duration
}

func NewExtractor(cfg *config.FetcherConfig) *Extractor {
	return &Extractor{retries: cfg.Retries}
}

// NewBatchExtractor adds a fixed inter-request pause for crawl jobs, to be
// a considerate crawling citizen.
func NewBatchExtractor(cfg *config.FetcherConfig, pause time.Duration) *Extractor {
	return &Extractor{retries: cfg.Retries, pause: pause}
}

// Features is the serving-path entry point: always a complete slot map,
// degraded or not.
func (e *Extractor) Features(ctx context.Context, rawURL string) model.FeatureMap {
	feats, err := e.Extract(ctx, rawURL)
	if err != nil {
		collector.IncDegradation("webpage")
		log.Debug().Err(err).Str("url", rawURL).Msg("Page extraction degraded to sentinel values")
	}
	return feats
}

// Extract fetches and parses the page. The returned map is complete either
// way; the error reports why the count slots are sentinels, which the batch
// crawler records in its failure log.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (model.FeatureMap, error) {
	feats := urlDerived(rawURL)

	body, err := e.fetch(ctx, rawURL)
	if err != nil {
		return sentinelSlots(feats), err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return sentinelSlots(feats), err
	}

	base := urltools.Extract(rawURL).Registrable()

	feats["num_script"] = float64(doc.Find("script").Length())
	feats["num_form"] = float64(doc.Find("form").Length())
	feats["num_iframe"] = float64(doc.Find("iframe").Length())
	feats["num_links"] = float64(doc.Find("a").Length())
	feats["num_external_links"] = countExternalLinks(doc, base)
	feats["num_hidden_inputs"] = float64(doc.Find(`input[type="hidden"]`).Length())
	feats["num_password_inputs"] = float64(doc.Find(`input[type="password"]`).Length())
	feats["external_form_action"] = externalFormAction(doc, base)

	scripts := inlineScriptText(doc)
	feats["right_click_disabled"] = boolSlot(strings.Contains(scripts, "contextmenu"))
	feats["popup_window"] = boolSlot(strings.Contains(scripts, "window.open"))
	feats["eval_js_count"] = float64(strings.Count(scripts, "eval("))

	feats["page_accessible"] = 1
	return feats, nil
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	var err error

	for attempt := 0; attempt <= e.retries; attempt++ {
		if attempt > 0 && e.pause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.pause):
			}
		}

		body, err = ic.Fetch(rawURL)
		if err == nil {
			return body, nil
		}
	}

	return nil, err
}

// shortenerDomains are matched as plain substrings of the raw URL, the way
// the training pipeline computed the slot.
var shortenerDomains = []string{
	"bit.ly",
	"goo.gl",
	"tinyurl",
	"t.co",
	"is.gd",
	"cutt.ly",
	"kutt.it",
}

// urlDerived computes the slots that need no fetch, so they survive any
// network failure. has_https is a literal prefix check, matching the
// training-time extractor.
func urlDerived(rawURL string) model.FeatureMap {
	hasHTTPS := 0.0
	if strings.HasPrefix(rawURL, "https") {
		hasHTTPS = 1
	}
	return model.FeatureMap{
		"url_length":    float64(len(rawURL)),
		"has_https":     hasHTTPS,
		"url_shortener": boolSlot(isShortened(rawURL)),
	}
}

func isShortened(rawURL string) bool {
	for _, d := range shortenerDomains {
		if strings.Contains(rawURL, d) {
			return true
		}
	}
	return false
}

func sentinelSlots(feats model.FeatureMap) model.FeatureMap {
	for _, slot := range countSlots {
		feats[slot] = model.Sentinel
	}
	feats["page_accessible"] = 0
	return feats
}

func countExternalLinks(doc *goquery.Document, base string) float64 {
	external := 0
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		u, err := url.Parse(href)
		if err != nil || u.Host == "" {
			return
		}
		if reg := urltools.Extract(href).Registrable(); reg != "" && reg != base {
			external++
		}
	})
	return float64(external)
}

func externalFormAction(doc *goquery.Document, base string) float64 {
	external := 0.0
	doc.Find("form[action]").EachWithBreak(func(_ int, f *goquery.Selection) bool {
		action, _ := f.Attr("action")
		if reg := urltools.Extract(action).Registrable(); reg != "" && reg != base {
			external = 1
			return false
		}
		return true
	})
	return external
}

func inlineScriptText(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		sb.WriteString(s.Text())
		sb.WriteString(" ")
	})
	return strings.ToLower(sb.String())
}

func boolSlot(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
