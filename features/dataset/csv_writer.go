package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVWriter wraps the standard csv.Writer for dataset exports. Export
// snapshots the full repository each run, so the target file is truncated
// on open and re-running an export never duplicates rows.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates or truncates filePath for a fresh export.
func NewCSVWriter(filePath string) (*CSVWriter, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}

	return &CSVWriter{
		file:   file,
		writer: csv.NewWriter(file),
	}, nil
}

func (cw *CSVWriter) WriteHeader(header []string) error {
	return cw.writer.Write(header)
}

func (cw *CSVWriter) WriteRow(row []string) error {
	return cw.writer.Write(row)
}

func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	flushErr := cw.writer.Error()
	closeErr := cw.file.Close()

	if flushErr != nil {
		return fmt.Errorf("error flushing CSV writer: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("error closing CSV file: %w", closeErr)
	}
	return nil
}
