package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/brainchart/internal/mathx"
	"git.sr.ht/~whereswaldon/brainchart/model"
)

// Options control how data files become chart sources.
type Options struct {
	// Bins is the number of histogram buckets.
	Bins int
	// History is the line series capacity.
	History int
}

func DefaultOptions() Options {
	return Options{Bins: 20, History: model.DefaultLineHistory}
}

// SourceName derives a source name from a file path.
func SourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadFile parses the file at path as kind.
func LoadFile(kind model.ChartKind, path string, opts Options) (*model.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening %s data: %w", kind, err)
	}
	defer f.Close()
	return Parse(kind, SourceName(path), f, opts)
}

// Parse reads CSV data from r. Every format has a heading row.
//
// Histogram files hold one column of raw values per map. Line series files
// hold the shared X values in the first column and one line per further
// column. Matrix files hold the row name in the first column and one matrix
// column per further column.
func Parse(kind model.ChartKind, name string, r io.Reader, opts Options) (*model.Source, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.Comment = '#'
	headings, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed reading CSV headings: %w", name, err)
	}
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: failed reading CSV data: %w", name, err)
	}
	switch kind {
	case model.Histogram:
		h, err := parseHistogram(name, headings, records, opts.Bins)
		if err != nil {
			return nil, err
		}
		return model.HistogramSource(h), nil
	case model.LineSeries:
		c, err := parseLineSeries(name, headings, records, opts.History)
		if err != nil {
			return nil, err
		}
		return model.LineSeriesSource(c), nil
	case model.Matrix:
		m, err := parseMatrix(name, headings, records)
		if err != nil {
			return nil, err
		}
		return model.MatrixSource(m), nil
	default:
		return nil, fmt.Errorf("%s: unknown chart kind %v", name, kind)
	}
}

// parseCell parses one value. Empty cells are NaN.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseHistogram(name string, headings []string, records [][]string, bins int) (*model.HistogramChart, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%s: invalid bucket count %d", name, bins)
	}
	columns := make([][]float64, len(headings))
	var errs []error
	for row, rec := range records {
		for i, cell := range rec {
			v, err := parseCell(cell)
			if err != nil {
				errs = append(errs, fmt.Errorf("row %d column %q: %w", row+2, headings[i], err))
				continue
			}
			if mathx.Finite(v) {
				columns[i] = append(columns[i], v)
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	h := model.NewHistogramChart(name)
	for i, values := range columns {
		h.SetBuckets(i, Bucketize(values, bins))
	}
	return h, nil
}

// Bucketize counts values into bins equal buckets spanning their range. A
// single distinct value gets a bucket range of one centered on it.
func Bucketize(values []float64, bins int) model.Buckets {
	var ext mathx.Extent
	for _, v := range values {
		ext.Include(v)
	}
	if !ext.Set {
		return model.Buckets{}
	}
	if ext.Min == ext.Max {
		ext.Min -= 0.5
		ext.Max += 0.5
	}
	b := model.Buckets{Min: ext.Min, Max: ext.Max, Counts: make([]float64, bins)}
	w := b.Width()
	for _, v := range values {
		i := mathx.Clamp(int((v-b.Min)/w), 0, bins-1)
		b.Counts[i]++
	}
	return b
}

func parseLineSeries(name string, headings []string, records [][]string, history int) (*model.LineSeriesChart, error) {
	if len(headings) < 2 {
		return nil, fmt.Errorf("%s: line series need an X column and at least one line", name)
	}
	lines := make([]*model.Line, len(headings)-1)
	for i := range lines {
		lines[i] = model.NewLine(headings[i+1])
	}
	for row, rec := range records {
		x, err := parseCell(rec[0])
		if err != nil || !mathx.Finite(x) {
			log.Printf("%s: skipping row %d with X %q", name, row+2, rec[0])
			continue
		}
		for i, cell := range rec[1:] {
			y, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %q: %w", name, row+2, headings[i+1], err)
			}
			if math.IsNaN(y) {
				// Skip null cells.
				continue
			}
			if !lines[i].Insert(x, y) {
				log.Printf("%s: dropping duplicate X %v in %q", name, x, headings[i+1])
			}
		}
	}
	c := model.NewLineSeriesChart(name, max(history, len(lines)))
	for _, l := range lines {
		c.Push(l)
	}
	return c, nil
}

func parseMatrix(name string, headings []string, records [][]string) (*model.MatrixChart, error) {
	cols := len(headings) - 1
	if cols < 1 || len(records) == 0 {
		return nil, fmt.Errorf("%s: matrix needs at least one row and one column", name)
	}
	values := make([]float64, 0, len(records)*cols)
	rowNames := make([]string, len(records))
	for row, rec := range records {
		rowNames[row] = strings.TrimSpace(rec[0])
		for i, cell := range rec[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %q: %w", name, row+2, headings[i+1], err)
			}
			values = append(values, v)
		}
	}
	m, err := model.NewMatrixChart(name, len(records), cols, values)
	if err != nil {
		return nil, err
	}
	m.SetNames(rowNames, headings[1:])
	return m, nil
}
