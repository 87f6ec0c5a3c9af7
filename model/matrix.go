package model

import (
	"fmt"
	"image/color"
	"sync"

	"git.sr.ht/~whereswaldon/brainchart/internal/mathx"
	"git.sr.ht/~whereswaldon/brainchart/primitive"
)

// GridColor is the alternative color set of a matrix cell primitive used to
// outline the cells.
const GridColor primitive.AltColorID = 1

// MatrixChart is a dense rows x cols grid of values, such as a connectivity
// matrix.
type MatrixChart struct {
	lock       sync.RWMutex
	name       string
	rows, cols int
	values     []float64
	rowNames   []string
	colNames   []string
	ramp       Ramp
	gridColor  color.NRGBA
	valueRange mathx.Extent
	cells      map[TriangularMode]*primitive.Primitive
}

// NewMatrixChart copies values, which holds rows*cols entries in row major
// order.
func NewMatrixChart(name string, rows, cols int, values []float64) (*MatrixChart, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matrix %q: invalid dimensions %dx%d", name, rows, cols)
	}
	if len(values) != rows*cols {
		return nil, fmt.Errorf("matrix %q: have %d values, need %d", name, len(values), rows*cols)
	}
	m := &MatrixChart{
		name:      name,
		rows:      rows,
		cols:      cols,
		values:    append([]float64(nil), values...),
		ramp:      DefaultRamp(),
		gridColor: color.NRGBA{A: 0xff},
		cells:     make(map[TriangularMode]*primitive.Primitive),
	}
	for _, v := range values {
		if mathx.Finite(v) {
			m.valueRange.Include(v)
		}
	}
	return m, nil
}

func (m *MatrixChart) Name() string {
	return m.name
}

// Dims returns the number of rows and columns.
func (m *MatrixChart) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// Value returns the value of cell (row, col).
func (m *MatrixChart) Value(row, col int) float64 {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.values[row*m.cols+col]
}

// ValueRange returns the extent of the finite values.
func (m *MatrixChart) ValueRange() mathx.Extent {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.valueRange
}

// SetNames sets the row and column labels. Missing labels fall back to the
// index.
func (m *MatrixChart) SetNames(rows, cols []string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.rowNames = append([]string(nil), rows...)
	m.colNames = append([]string(nil), cols...)
}

// RowName returns the label of row i.
func (m *MatrixChart) RowName(i int) string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if i < len(m.rowNames) && m.rowNames[i] != "" {
		return m.rowNames[i]
	}
	return fmt.Sprint(i + 1)
}

// ColumnName returns the label of column i.
func (m *MatrixChart) ColumnName(i int) string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if i < len(m.colNames) && m.colNames[i] != "" {
		return m.colNames[i]
	}
	return fmt.Sprint(i + 1)
}

// SetRamp changes the cell palette and drops the cached primitives.
func (m *MatrixChart) SetRamp(r Ramp, grid color.NRGBA) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.ramp = r
	m.gridColor = grid
	clear(m.cells)
}

// Bounds returns the cell space extent: columns along X and rows along Y.
func (m *MatrixChart) Bounds() (x, y mathx.Extent) {
	x.Include(0)
	x.Include(float64(m.cols))
	y.Include(0)
	y.Include(float64(m.rows))
	return x, y
}

// CellPrimitive returns the cells shown under mode. Cell (r, c) covers
// [c, c+1] x [rows-r-1, rows-r] so that row 0 is at the top, and carries the
// identifier r*cols+c.
func (m *MatrixChart) CellPrimitive(mode TriangularMode) *primitive.Primitive {
	m.lock.Lock()
	defer m.lock.Unlock()
	if p, ok := m.cells[mode]; ok {
		return p
	}
	p := primitive.New(primitive.Quads, 1)
	span := m.valueRange.Max - m.valueRange.Min
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if !mode.Includes(r, c) {
				continue
			}
			t := 0.5
			if span > 0 {
				t = (m.values[r*m.cols+c] - m.valueRange.Min) / span
			}
			y0 := float64(m.rows - r - 1)
			p.AddQuad(r*m.cols+c, float64(c), y0, float64(c+1), y0+1, m.ramp.At(t))
		}
	}
	p.SetAlternativeColor(GridColor, m.gridColor)
	m.cells[mode] = p
	return p
}

// RowExtent returns the half-open range of columns [lo, hi) of row that are
// shown under mode.
func RowExtent(mode TriangularMode, row, rows, cols int) (lo, hi int) {
	switch mode {
	case LowerNoDiagonal:
		return 0, min(row, cols)
	case UpperNoDiagonal:
		return min(row+1, cols), cols
	default:
		return 0, cols
	}
}

// ColumnExtent returns the half-open range of rows [lo, hi) of col that are
// shown under mode.
func ColumnExtent(mode TriangularMode, col, rows, cols int) (lo, hi int) {
	switch mode {
	case LowerNoDiagonal:
		return min(col+1, rows), rows
	case UpperNoDiagonal:
		return 0, min(col, rows)
	default:
		return 0, rows
	}
}
