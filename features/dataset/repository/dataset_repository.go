package repository

import (
	"context"

	"phishdetect/features/dataset"
)

// DatasetRepository persists crawl output between runs so a batch can be
// resumed and re-exported without refetching.
type DatasetRepository interface {
	SaveRow(ctx context.Context, row *dataset.FeatureRow) error
	SaveFailure(ctx context.Context, failure *dataset.Failure) error
	StreamRows(ctx context.Context, fn func(row *dataset.FeatureRow) error) error
	StreamFailures(ctx context.Context, fn func(failure *dataset.Failure) error) error
	Counts(ctx context.Context) (rows int, failures int, err error)
}
