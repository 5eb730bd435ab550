package dataset

import (
	"strconv"
	"time"

	"phishdetect/features/model"
)

// featureColumns is the crawl output column order after url and label.
// It matches the training dataframe the offline job builds.
var featureColumns = []string{
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

// FeatureRow is one crawled URL with its extracted page features. Failed
// fetches still produce a row, with sentinel feature values.
type FeatureRow struct {
	URL       string
	Label     int
	Features  model.FeatureMap
	CreatedAt time.Time
}

// Failure records a URL whose fetch did not succeed, for the skip log.
type Failure struct {
	URL       string
	Label     int
	Reason    string
	CreatedAt time.Time
}

// Header returns the dataset CSV header.
func Header() []string {
	return append([]string{"url", "label"}, featureColumns...)
}

// Record flattens the row into dataset CSV column order.
func (r *FeatureRow) Record() []string {
	record := make([]string, 0, len(featureColumns)+2)
	record = append(record, r.URL, strconv.Itoa(r.Label))
	for _, col := range featureColumns {
		record = append(record, formatFeature(r.Features[col]))
	}
	return record
}

// FailureHeader returns the skip-log CSV header.
func FailureHeader() []string {
	return []string{"url", "label", "reason"}
}

func (f *Failure) Record() []string {
	return []string{f.URL, strconv.Itoa(f.Label), f.Reason}
}

func formatFeature(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}
