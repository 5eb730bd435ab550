package db

import (
	"database/sql"
	"fmt"

	"phishdetect/internal/config"

	_ "modernc.org/sqlite"
)

var isTesting bool

func SetTesting(state bool) {
	isTesting = state
}

func initializeDatabase() (db *sql.DB, err error) {
	if isTesting {
		// One connection only: each pooled connection to :memory: would
		// otherwise see its own empty database.
		db, err = sql.Open("sqlite", ":memory:")
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	} else {
		db, err = sql.Open("sqlite", config.GetConfig().Crawler.DBPath)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := initDB(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return db, nil
}

// initDB creates the crawl output tables if they do not exist: one row per
// crawled URL with its page feature columns, plus a failure log for URLs
// whose fetch did not succeed.
func initDB(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS crawl_rows (
			url TEXT NOT NULL,
			label INTEGER NOT NULL,
			num_script INTEGER,
			num_form INTEGER,
			num_iframe INTEGER,
			num_links INTEGER,
			num_external_links INTEGER,
			num_hidden_inputs INTEGER,
			num_password_inputs INTEGER,
			external_form_action INTEGER,
			right_click_disabled INTEGER,
			popup_window INTEGER,
			eval_js_count INTEGER,
			url_length INTEGER,
			has_https INTEGER,
			page_accessible INTEGER,
			created_at DATETIME,
			UNIQUE (url)
		);

		CREATE TABLE IF NOT EXISTS crawl_failures (
			url TEXT NOT NULL,
			label INTEGER NOT NULL,
			reason TEXT,
			created_at DATETIME,
			UNIQUE (url)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create crawl tables: %w", err)
	}
	return nil
}
