package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"texas-market-sim/models"
)

const yearColumn = "Year"

// Header returns the export column headers: Year then every indicator in
// column order.
func Header() []string {
	inds := models.Indicators()
	h := make([]string, 0, len(inds)+1)
	h = append(h, yearColumn)
	for _, ind := range inds {
		h = append(h, ind.String())
	}
	return h
}

// formatValue writes the shortest decimal that parses back to exactly v.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CSVWriter writes a generated series to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{path: path, file: f, writer: w}, nil
}

// Path returns the file being written.
func (c *CSVWriter) Path() string { return c.path }

// Write appends one row per year. The region name is implied by the file.
func (c *CSVWriter) Write(_ string, s models.Series) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	width := len(models.Indicators()) + 1
	for _, r := range s {
		row := make([]string, 0, width)
		row = append(row, strconv.Itoa(r.Year))
		for _, v := range r.Values() {
			row = append(row, formatValue(v))
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}

// ReadCSV parses a file produced by CSVWriter. Columns are matched by header
// name, so their order in the file does not matter; unknown columns are
// ignored. Every indicator column must be present.
func ReadCSV(path string) (models.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	yearIdx := -1
	cols := make(map[int]models.Indicator, len(header))
	for i, name := range header {
		if name == yearColumn {
			yearIdx = i
			continue
		}
		if ind, ok := models.ParseIndicator(name); ok {
			cols[i] = ind
		}
	}
	if yearIdx < 0 {
		return nil, fmt.Errorf("csv: missing %q column", yearColumn)
	}
	if len(cols) < len(models.Indicators()) {
		found := make(map[models.Indicator]bool, len(cols))
		for _, ind := range cols {
			found[ind] = true
		}
		var missing []string
		for _, ind := range models.Indicators() {
			if !found[ind] {
				missing = append(missing, ind.String())
			}
		}
		return nil, fmt.Errorf("csv: missing columns: %s", strings.Join(missing, ", "))
	}

	var s models.Series
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read line %d: %w", line, err)
		}

		year, err := strconv.Atoi(rec[yearIdx])
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: parse year: %w", line, err)
		}
		row := models.NewYearRow(year)
		for i, ind := range cols {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, fmt.Errorf("csv: line %d: parse %s: %w", line, ind, err)
			}
			row.Set(ind, v)
		}
		s = append(s, row)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return s, nil
}
