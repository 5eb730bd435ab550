package dataset_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"phishdetect/features/dataset"
	"phishdetect/features/dataset/repository"
	"phishdetect/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawlerRun(t *testing.T) {
	ctx, db, err := utils.InitializeWithDB(t)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><form><input type="password"></form><a href="/x">x</a></body></html>`))
	}))
	defer srv.Close()

	input := filepath.Join(t.TempDir(), "input.csv")
	content := fmt.Sprintf("url,label\n%s/page,1\nhttp://127.0.0.1:1/unreachable,0\n", srv.URL)
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))

	repo := repository.NewSQLiteRepository(db)
	crawler := dataset.NewCrawler(repo)

	require.NoError(t, crawler.Run(ctx, input))

	rows := map[string]*dataset.FeatureRow{}
	require.NoError(t, repo.StreamRows(ctx, func(r *dataset.FeatureRow) error {
		rows[r.URL] = r
		return nil
	}))
	require.Len(t, rows, 2, "failed fetches still produce a feature row")

	ok := rows[srv.URL+"/page"]
	require.NotNil(t, ok)
	assert.Equal(t, 1, ok.Label)
	assert.Equal(t, 1.0, ok.Features["page_accessible"])
	assert.Equal(t, 1.0, ok.Features["num_form"])
	assert.Equal(t, 1.0, ok.Features["num_password_inputs"])

	bad := rows["http://127.0.0.1:1/unreachable"]
	require.NotNil(t, bad)
	assert.Equal(t, 0, bad.Label)
	assert.Equal(t, 0.0, bad.Features["page_accessible"])

	var failures []*dataset.Failure
	require.NoError(t, repo.StreamFailures(ctx, func(f *dataset.Failure) error {
		failures = append(failures, f)
		return nil
	}))
	require.Len(t, failures, 1)
	assert.Equal(t, "http://127.0.0.1:1/unreachable", failures[0].URL)
	assert.NotEmpty(t, failures[0].Reason)
}

func TestCrawlerRunMissingInput(t *testing.T) {
	ctx, db, err := utils.InitializeWithDB(t)
	require.NoError(t, err)

	crawler := dataset.NewCrawler(repository.NewSQLiteRepository(db))
	assert.Error(t, crawler.Run(ctx, filepath.Join(t.TempDir(), "absent.csv")))
}
