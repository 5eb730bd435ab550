package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDBCreatesSchema(t *testing.T) {
	SetTesting(true)

	conn, err := GetDB()
	require.NoError(t, err)
	require.NotNil(t, conn)

	_, err = conn.Exec(`INSERT INTO crawl_rows (url, label, created_at) VALUES ('http://a.example', 1, CURRENT_TIMESTAMP)`)
	assert.NoError(t, err)

	_, err = conn.Exec(`INSERT INTO crawl_failures (url, label, reason, created_at) VALUES ('http://b.example', 0, 'timeout', CURRENT_TIMESTAMP)`)
	assert.NoError(t, err)

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM crawl_rows`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestGetDBIsSingleton(t *testing.T) {
	SetTesting(true)

	first, err := GetDB()
	require.NoError(t, err)

	second, err := GetDB()
	require.NoError(t, err)

	assert.Same(t, first, second)
}
