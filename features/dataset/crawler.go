package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"phishdetect/features/webpage"
	"phishdetect/internal/collector"
	"phishdetect/internal/config"

	"github.com/rs/zerolog/log"
)

// Repository is the persistence surface the crawler needs. The sqlite
// implementation lives in the repository subpackage.
type Repository interface {
	SaveRow(ctx context.Context, row *FeatureRow) error
	SaveFailure(ctx context.Context, failure *Failure) error
	StreamRows(ctx context.Context, fn func(row *FeatureRow) error) error
	StreamFailures(ctx context.Context, fn func(failure *Failure) error) error
}

// Crawler walks a labeled URL list sequentially, extracting page features
// for each entry. One bad URL never aborts the batch: failures land in the
// skip log and the loop moves on.
type Crawler struct {
	extractor *webpage.Extractor
	repo      Repository
	pause     time.Duration
}

func NewCrawler(repo Repository) *Crawler {
	cfg := config.GetConfig()
	return &Crawler{
		extractor: webpage.NewBatchExtractor(&cfg.Fetcher, cfg.Crawler.Pause),
		repo:      repo,
		pause:     cfg.Crawler.Pause,
	}
}

// Run reads url,label pairs from inputPath and persists one feature row per
// URL. Rows whose fetch failed are additionally recorded as failures; their
// feature rows keep sentinel values so the training job can filter or keep
// them as it sees fit.
func (c *Crawler) Run(ctx context.Context, inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open crawl input: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	processed, failed := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read crawl input: %w", err)
		}

		rawURL, label, ok := parseInputRecord(record)
		if !ok {
			continue
		}

		if err := c.crawlOne(ctx, rawURL, label); err != nil {
			failed++
		}
		processed++

		if c.pause > 0 {
			select {
			case <-time.After(c.pause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	log.Info().
		Int("processed", processed).
		Int("failed", failed).
		Msg("Crawl batch finished")
	return nil
}

// crawlOne extracts and persists a single URL. The returned error only
// signals a fetch failure for counting; it is already recorded.
func (c *Crawler) crawlOne(ctx context.Context, rawURL string, label int) error {
	now := time.Now().UTC()
	feats, extractErr := c.extractor.Extract(ctx, rawURL)

	row := &FeatureRow{URL: rawURL, Label: label, Features: feats, CreatedAt: now}
	if err := c.repo.SaveRow(ctx, row); err != nil {
		log.Error().Err(err).Str("url", rawURL).Msg("Failed to persist crawl row")
	}

	if extractErr != nil {
		collector.IncCrawlFailed()
		failure := &Failure{URL: rawURL, Label: label, Reason: extractErr.Error(), CreatedAt: now}
		if err := c.repo.SaveFailure(ctx, failure); err != nil {
			log.Error().Err(err).Str("url", rawURL).Msg("Failed to persist crawl failure")
		}
		log.Warn().Err(extractErr).Str("url", rawURL).Msg("Crawl fetch failed")
		return extractErr
	}

	collector.IncCrawlProcessed()
	log.Debug().Str("url", rawURL).Int("label", label).Msg("Crawled")
	return nil
}

// Export snapshots the persisted rows and failures into the configured CSV
// output and skip-log files. The files are rewritten from scratch each run,
// so exporting twice yields the same dataset, not a doubled one.
func (c *Crawler) Export(ctx context.Context) error {
	cfg := config.GetConfig().Crawler

	if err := c.exportRows(ctx, cfg.OutputFile); err != nil {
		return err
	}
	return c.exportFailures(ctx, cfg.FailureLog)
}

func (c *Crawler) exportRows(ctx context.Context, path string) error {
	writer, err := NewCSVWriter(path)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.WriteHeader(Header()); err != nil {
		return fmt.Errorf("failed to write dataset header: %w", err)
	}

	return c.repo.StreamRows(ctx, func(row *FeatureRow) error {
		return writer.WriteRow(row.Record())
	})
}

func (c *Crawler) exportFailures(ctx context.Context, path string) error {
	writer, err := NewCSVWriter(path)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.WriteHeader(FailureHeader()); err != nil {
		return fmt.Errorf("failed to write failure log header: %w", err)
	}

	return c.repo.StreamFailures(ctx, func(failure *Failure) error {
		return writer.WriteRow(failure.Record())
	})
}

// parseInputRecord accepts url,label lines and tolerates a header row or a
// bare URL without a label (treated as phishing, label 1).
func parseInputRecord(record []string) (string, int, bool) {
	if len(record) == 0 {
		return "", 0, false
	}

	rawURL := strings.TrimSpace(record[0])
	if rawURL == "" || strings.EqualFold(rawURL, "url") {
		return "", 0, false
	}

	label := 1
	if len(record) > 1 {
		parsed, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return "", 0, false
		}
		label = parsed
	}
	return rawURL, label, true
}
