package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"phishdetect/features/dataset"
	"phishdetect/features/model"
)

var rowColumns = []string{
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
	"url_length",
	"has_https",
	"page_accessible",
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) SaveRow(ctx context.Context, row *dataset.FeatureRow) error {
	query := `INSERT INTO crawl_rows (url, label,
		num_script, num_form, num_iframe, num_links, num_external_links,
		num_hidden_inputs, num_password_inputs, external_form_action,
		right_click_disabled, popup_window, eval_js_count,
		url_length, has_https, page_accessible, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO NOTHING`

	args := make([]any, 0, len(rowColumns)+3)
	args = append(args, row.URL, row.Label)
	for _, col := range rowColumns {
		args = append(args, int64(row.Features[col]))
	}
	args = append(args, row.CreatedAt)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save crawl row for %s: %w", row.URL, err)
	}
	return nil
}

func (r *SQLiteRepository) SaveFailure(ctx context.Context, failure *dataset.Failure) error {
	query := `INSERT INTO crawl_failures (url, label, reason, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET reason = excluded.reason, created_at = excluded.created_at`

	if _, err := r.db.ExecContext(ctx, query, failure.URL, failure.Label, failure.Reason, failure.CreatedAt); err != nil {
		return fmt.Errorf("failed to save crawl failure for %s: %w", failure.URL, err)
	}
	return nil
}

func (r *SQLiteRepository) StreamRows(ctx context.Context, fn func(row *dataset.FeatureRow) error) error {
	query := `SELECT url, label,
		num_script, num_form, num_iframe, num_links, num_external_links,
		num_hidden_inputs, num_password_inputs, external_form_action,
		right_click_disabled, popup_window, eval_js_count,
		url_length, has_https, page_accessible, created_at
		FROM crawl_rows ORDER BY created_at, url`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query crawl rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		row := &dataset.FeatureRow{Features: make(model.FeatureMap, len(rowColumns))}
		values := make([]int64, len(rowColumns))

		dest := make([]any, 0, len(rowColumns)+3)
		dest = append(dest, &row.URL, &row.Label)
		for i := range values {
			dest = append(dest, &values[i])
		}
		var createdAt time.Time
		dest = append(dest, &createdAt)

		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("failed to scan crawl row: %w", err)
		}

		row.CreatedAt = createdAt
		for i, col := range rowColumns {
			row.Features[col] = float64(values[i])
		}

		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *SQLiteRepository) StreamFailures(ctx context.Context, fn func(failure *dataset.Failure) error) error {
	query := `SELECT url, label, reason, created_at FROM crawl_failures ORDER BY created_at, url`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query crawl failures: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		failure := &dataset.Failure{}
		if err := rows.Scan(&failure.URL, &failure.Label, &failure.Reason, &failure.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan crawl failure: %w", err)
		}
		if err := fn(failure); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *SQLiteRepository) Counts(ctx context.Context) (int, int, error) {
	var rowCount, failureCount int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM crawl_rows`).Scan(&rowCount); err != nil {
		return 0, 0, fmt.Errorf("failed to count crawl rows: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM crawl_failures`).Scan(&failureCount); err != nil {
		return 0, 0, fmt.Errorf("failed to count crawl failures: %w", err)
	}
	return rowCount, failureCount, nil
}
