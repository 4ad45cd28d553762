package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"sentimentdata/pkg/label"
)

// Fieldnames is the header of the dataset file.
var Fieldnames = []string{"Label", "Ticker", "Headline"}

// LabeledExample is one dataset row.
type LabeledExample struct {
	Label    label.Label `json:"label"`
	Ticker   string      `json:"ticker"`
	Headline string      `json:"headline"`
}

func (e LabeledExample) Record() []string {
	return []string{strconv.Itoa(int(e.Label)), e.Ticker, e.Headline}
}

// Writer appends rows to a CSV dataset, flushing after every row so a killed
// run keeps what it wrote.
type Writer struct {
	csv    *csv.Writer
	closer io.Closer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// OpenWriter opens filename for appending, creating it and its directory if
// needed. With header set, the header row is written only into an empty file.
func OpenWriter(filename string, header bool) (*Writer, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	w := &Writer{csv: csv.NewWriter(file), closer: file}

	if header {
		info, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to stat output file: %w", err)
		}
		if info.Size() == 0 {
			if err := w.WriteHeader(); err != nil {
				file.Close()
				return nil, err
			}
		}
	}

	return w, nil
}

func (w *Writer) WriteHeader() error {
	if err := w.csv.Write(Fieldnames); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

func (w *Writer) Write(e LabeledExample) error {
	if err := w.csv.Write(e.Record()); err != nil {
		return fmt.Errorf("failed to write row for %s: %w", e.Ticker, err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

func (w *Writer) Close() error {
	w.csv.Flush()
	err := w.csv.Error()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
