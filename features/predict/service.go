package predict

import (
	"context"
	"errors"
	"time"

	"phishdetect/features/cache"
	"phishdetect/features/lexical"
	"phishdetect/features/model"
	"phishdetect/features/reputation"
	"phishdetect/features/urltools"
	"phishdetect/features/webpage"
	"phishdetect/features/whitelist"
	"phishdetect/internal/collector"
	"phishdetect/internal/config"

	"github.com/rs/zerolog/log"
)

// Service errors
var (
	ErrModelUnavailable = errors.New("model unavailable")
	ErrEmptyURL         = errors.New("url not provided")
	ErrScoring          = errors.New("failed to score feature vector")
)

// Scorer is the black-box classifier contract: a vector in trained schema
// order goes in, a phishing probability comes out.
type Scorer interface {
	Predict(features []float64) (float64, error)
	Schema() model.Schema
}

// Service orchestrates the serving path: whitelist short-circuit, feature
// extraction, vector assembly, scoring. All fields are set once at
// construction and read-only afterwards, so one instance serves every
// worker concurrently.
type Service struct {
	scorer    Scorer
	wl        *whitelist.Whitelist
	pages     *webpage.Extractor
	rep       *reputation.Extractor
	threshold float64
	useCache  bool
}

// NewService wires the service from config. A nil scorer is allowed: the
// process stays up and every scoring request fails fast with
// ErrModelUnavailable until a restart fixes the artifact.
func NewService(scorer Scorer) *Service {
	cfg := config.GetConfig()

	s := &Service{
		scorer:    scorer,
		wl:        whitelist.New(cfg.Whitelist.Domains),
		threshold: cfg.Model.Threshold,
		useCache:  cfg.Cache.Enabled,
	}

	if cfg.Extractor.EnablePage {
		s.pages = webpage.NewExtractor(&cfg.Fetcher)
	}
	if cfg.Extractor.EnableReputation {
		s.rep = reputation.NewExtractor(&cfg.Reputation)
	}

	return s
}

// Ready reports whether a model artifact is loaded. Checked once per
// request before any extraction work is spent.
func (s *Service) Ready() bool {
	return s.scorer != nil
}

// extended reports whether any network-dependent extractor is active; the
// extended pipeline normalizes URLs before extraction, the baseline one
// scores them as-is.
func (s *Service) extended() bool {
	return s.pages != nil || s.rep != nil
}

// Predict runs the full pipeline for one URL. Extraction failures degrade
// to sentinel slots inside the extractors; only input validation and model
// availability surface as errors.
func (s *Service) Predict(ctx context.Context, rawURL string) (*Prediction, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}

	// Whitelist needs no model, so it runs even when scoring cannot.
	if s.wl.Contains(rawURL) {
		collector.IncWhitelistHit()
		log.Info().Str("url", rawURL).Msg("URL whitelisted, skipping scoring")
		return &Prediction{Status: StatusLegitimate, Probability: 0.0}, nil
	}

	if !s.Ready() {
		return nil, ErrModelUnavailable
	}

	target := rawURL
	if s.extended() {
		target = urltools.Normalize(rawURL)
	}

	if s.useCache && cache.Ready() {
		if verdict, err := cache.GetVerdict(target); err == nil {
			log.Debug().Str("url", target).Msg("Serving verdict from cache")
			return &Prediction{Status: verdict.Status, Probability: verdict.Probability}, nil
		}
	}

	start := time.Now()

	maps := []model.FeatureMap{lexical.Features(target)}
	if s.pages != nil {
		maps = append(maps, s.pages.Features(ctx, target))
	}
	if s.rep != nil {
		maps = append(maps, s.rep.Features(ctx, target))
	}

	vector := model.Assemble(s.scorer.Schema(), maps...)

	probability, err := s.scorer.Predict(vector)
	if err != nil {
		log.Error().Err(err).Str("url", target).Msg("Scoring failed")
		return nil, errors.Join(ErrScoring, err)
	}

	status := Label(probability, s.threshold)
	collector.ObserveScoring(time.Since(start))
	collector.IncPrediction(status)

	if s.useCache && cache.Ready() {
		cache.SubmitVerdict(target, status, probability)
	}

	log.Info().
		Str("url", target).
		Str("status", status).
		Float64("probability", probability).
		Msg("Prediction completed")

	return &Prediction{Status: status, Probability: probability}, nil
}
