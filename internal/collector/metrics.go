package collector

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once
	mc   *MetricsCollector
)

type MetricsCollector struct {
	predictionsTotal *prometheus.CounterVec // by verdict
	whitelistHits    prometheus.Counter
	cacheHits        prometheus.Counter
	degradations     *prometheus.CounterVec // by pipeline stage
	scoringDuration  prometheus.Gauge
	crawlProcessed   prometheus.Counter
	crawlFailed      prometheus.Counter
}

func GetMetricsCollector() (*MetricsCollector, error) {
	if mc == nil {
		return nil, fmt.Errorf("MetricsCollector not initialized")
	}
	return mc, nil
}

// NewMetricsCollector initializes the Prometheus metrics singleton.
func NewMetricsCollector() *MetricsCollector {
	once.Do(func() {
		mc = &MetricsCollector{
			predictionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "phishdetect_predictions_total",
				Help: "Total number of scored prediction requests by verdict.",
			}, []string{"verdict"}),

			whitelistHits: promauto.NewCounter(prometheus.CounterOpts{
				Name: "phishdetect_whitelist_hits_total",
				Help: "Total number of requests short-circuited by the trust whitelist.",
			}),

			cacheHits: promauto.NewCounter(prometheus.CounterOpts{
				Name: "phishdetect_verdict_cache_hits_total",
				Help: "Total number of requests answered from the verdict cache.",
			}),

			degradations: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "phishdetect_extraction_degradations_total",
				Help: "Total number of extraction sub-lookups resolved to sentinel values by stage.",
			}, []string{"stage"}),

			scoringDuration: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "phishdetect_scoring_duration_seconds",
				Help: "Duration of the last feature extraction plus scoring pass in seconds.",
			}),

			crawlProcessed: promauto.NewCounter(prometheus.CounterOpts{
				Name: "phishdetect_crawl_rows_processed_total",
				Help: "Total number of dataset rows processed by the batch crawler.",
			}),

			crawlFailed: promauto.NewCounter(prometheus.CounterOpts{
				Name: "phishdetect_crawl_rows_failed_total",
				Help: "Total number of dataset rows whose fetch did not succeed.",
			}),
		}
	})

	return mc
}

// Package-level helpers no-op before initialization so library code (tests,
// one-off CLI runs) can record without wiring Prometheus first.

func IncPrediction(verdict string) {
	if mc != nil {
		mc.predictionsTotal.With(prometheus.Labels{"verdict": verdict}).Inc()
	}
}

func IncWhitelistHit() {
	if mc != nil {
		mc.whitelistHits.Inc()
	}
}

func IncCacheHit() {
	if mc != nil {
		mc.cacheHits.Inc()
	}
}

func IncDegradation(stage string) {
	if mc != nil {
		mc.degradations.With(prometheus.Labels{"stage": stage}).Inc()
	}
}

func ObserveScoring(d time.Duration) {
	if mc != nil {
		mc.scoringDuration.Set(d.Seconds())
	}
}

func IncCrawlProcessed() {
	if mc != nil {
		mc.crawlProcessed.Inc()
	}
}

func IncCrawlFailed() {
	if mc != nil {
		mc.crawlFailed.Inc()
	}
}
