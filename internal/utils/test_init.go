package utils

import (
	"context"
	"database/sql"
	"testing"

	"phishdetect/internal/config"
	"phishdetect/internal/db"
	"phishdetect/internal/logger"

	"github.com/stretchr/testify/assert"
)

// Initialize bootstraps logger and config for tests.
func Initialize(t *testing.T) (ctx context.Context, err error) {
	logger.InitializeLogger()
	err = config.InitConfig()
	assert.NoError(t, err, "Should initialize config without error")

	return context.Background(), err
}

// InitializeWithDB additionally opens the in-memory crawl database.
func InitializeWithDB(t *testing.T) (ctx context.Context, _db *sql.DB, err error) {
	ctx, err = Initialize(t)
	if err != nil {
		return ctx, nil, err
	}

	db.SetTesting(true)
	_db, err = db.GetDB()
	assert.NoError(t, err, "Expected no error while obtaining DB")

	return ctx, _db, err
}
