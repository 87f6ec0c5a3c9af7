// Package selection coordinates identification: finding the chart item under
// the mouse when several overlays overlap.
//
// Every overlay reports its hit together with the depth it was drawn at. A
// sink keeps the closest hit seen since the last Reset.
package selection

import (
	"fmt"

	"git.sr.ht/~whereswaldon/brainchart/model"
)

// Sink remembers the depth of the closest hit recorded so far.
type Sink struct {
	depth float64
	valid bool
}

// TryRecordHit reports whether a hit at index and depth replaces the current
// one. Negative indices are misses and never do; otherwise the hit wins if the
// sink is empty or depth is strictly smaller than the recorded depth.
func (s *Sink) TryRecordHit(index int, depth float64) bool {
	if index < 0 {
		return false
	}
	if s.valid && depth >= s.depth {
		return false
	}
	s.depth, s.valid = depth, true
	return true
}

// Valid reports whether a hit has been recorded.
func (s *Sink) Valid() bool {
	return s.valid
}

// Depth returns the depth of the recorded hit.
func (s *Sink) Depth() float64 {
	return s.depth
}

// Origin names the overlay that produced a hit.
type Origin struct {
	Overlay int
	Source  string
}

// HistogramSink records the histogram bucket under the mouse.
type HistogramSink struct {
	Sink
	Origin
	MapIndex int
	Bucket   int
}

// TryRecord records bucket if it is closer than the current hit.
func (h *HistogramSink) TryRecord(o Origin, mapIndex, bucket int, depth float64) bool {
	if !h.TryRecordHit(bucket, depth) {
		return false
	}
	h.Origin, h.MapIndex, h.Bucket = o, mapIndex, bucket
	return true
}

func (h *HistogramSink) String() string {
	return fmt.Sprintf("%s map %d bucket %d", h.Source, h.MapIndex, h.Bucket)
}

// LineSeriesSink records the line point under the mouse.
type LineSeriesSink struct {
	Sink
	Origin
	// Entry is the serial of the history entry.
	Entry int
	Point int
}

// TryRecord records point of entry if it is closer than the current hit.
func (l *LineSeriesSink) TryRecord(o Origin, entry, point int, depth float64) bool {
	if !l.TryRecordHit(point, depth) {
		return false
	}
	l.Origin, l.Entry, l.Point = o, entry, point
	return true
}

func (l *LineSeriesSink) String() string {
	return fmt.Sprintf("%s entry %d point %d", l.Source, l.Entry, l.Point)
}

// MatrixSink records the matrix cell under the mouse.
type MatrixSink struct {
	Sink
	Origin
	Row, Column int
}

// TryRecord decodes the cell identifier index of a matrix with cols columns
// and records it if it is closer than the current hit.
func (m *MatrixSink) TryRecord(o Origin, index, cols int, depth float64) bool {
	if !m.TryRecordHit(index, depth) {
		return false
	}
	m.Origin = o
	m.Row, m.Column = CellRowColumn(index, cols)
	return true
}

func (m *MatrixSink) String() string {
	return fmt.Sprintf("%s row %d column %d", m.Source, m.Row, m.Column)
}

// CellRowColumn decodes a row major cell identifier.
func CellRowColumn(index, cols int) (row, col int) {
	return index / cols, index % cols
}

// Manager holds one sink per chart kind and which kinds identify at all.
type Manager struct {
	enabled [3]bool

	Histogram  HistogramSink
	LineSeries LineSeriesSink
	Matrix     MatrixSink
}

// NewManager returns a manager with identification enabled for every kind.
func NewManager() *Manager {
	return &Manager{enabled: [3]bool{true, true, true}}
}

// Enable turns identification of kind on or off.
func (m *Manager) Enable(kind model.ChartKind, on bool) {
	if int(kind) < len(m.enabled) {
		m.enabled[kind] = on
	}
}

// Enabled reports whether charts of kind identify.
func (m *Manager) Enabled(kind model.ChartKind) bool {
	return int(kind) < len(m.enabled) && m.enabled[kind]
}

// AnyEnabled reports whether any kind identifies.
func (m *Manager) AnyEnabled() bool {
	for _, on := range m.enabled {
		if on {
			return true
		}
	}
	return false
}

// Reset empties every sink. It runs at the start of each identification
// frame.
func (m *Manager) Reset() {
	m.Histogram = HistogramSink{}
	m.LineSeries = LineSeriesSink{}
	m.Matrix = MatrixSink{}
}

// Hit returns a description of the recorded hit of kind.
func (m *Manager) Hit(kind model.ChartKind) (string, bool) {
	switch kind {
	case model.Histogram:
		return m.Histogram.String(), m.Histogram.Valid()
	case model.LineSeries:
		return m.LineSeries.String(), m.LineSeries.Valid()
	case model.Matrix:
		return m.Matrix.String(), m.Matrix.Valid()
	default:
		return "", false
	}
}
