// Package model holds the chart data the renderer draws: overlay sets, axis
// descriptors and the histogram, line series and matrix data objects.
//
// Data objects may be updated from loader goroutines. The renderer only
// borrows read access for the duration of a frame.
package model

// ChartKind selects which renderer an overlay set is drawn with.
type ChartKind uint8

const (
	Histogram ChartKind = iota
	LineSeries
	Matrix
)

func (k ChartKind) String() string {
	switch k {
	case Histogram:
		return "histogram"
	case LineSeries:
		return "line-series"
	case Matrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// ParseChartKind is the inverse of ChartKind.String.
func ParseChartKind(s string) (ChartKind, bool) {
	for _, k := range []ChartKind{Histogram, LineSeries, Matrix} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// AxisLocation is the side of the chart an axis is drawn on.
type AxisLocation uint8

const (
	Left AxisLocation = iota
	Right
	Top
	Bottom
	numAxes
)

func (l AxisLocation) String() string {
	switch l {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// IsVertical reports whether the axis runs from bottom to top.
func (l AxisLocation) IsVertical() bool {
	return l == Left || l == Right
}

// TriangularMode selects which cells of a square matrix are shown.
type TriangularMode uint8

const (
	Full TriangularMode = iota
	FullNoDiagonal
	LowerNoDiagonal
	UpperNoDiagonal
)

func (m TriangularMode) String() string {
	switch m {
	case Full:
		return "full"
	case FullNoDiagonal:
		return "full-no-diagonal"
	case LowerNoDiagonal:
		return "lower-no-diagonal"
	case UpperNoDiagonal:
		return "upper-no-diagonal"
	default:
		return "unknown"
	}
}

// ParseTriangularMode is the inverse of TriangularMode.String.
func ParseTriangularMode(s string) (TriangularMode, bool) {
	for _, m := range []TriangularMode{Full, FullNoDiagonal, LowerNoDiagonal, UpperNoDiagonal} {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// Includes reports whether cell (row, col) is shown under m.
func (m TriangularMode) Includes(row, col int) bool {
	switch m {
	case FullNoDiagonal:
		return row != col
	case LowerNoDiagonal:
		return col < row
	case UpperNoDiagonal:
		return col > row
	default:
		return true
	}
}

// AxisUnits is the physical unit of an axis.
type AxisUnits uint8

const (
	UnitsNone AxisUnits = iota
	UnitsHertz
	UnitsMillimeters
	UnitsSeconds
)

func (u AxisUnits) String() string {
	switch u {
	case UnitsHertz:
		return "Hz"
	case UnitsMillimeters:
		return "mm"
	case UnitsSeconds:
		return "s"
	default:
		return ""
	}
}

// Quantity names what an axis in these units measures.
func (u AxisUnits) Quantity() string {
	switch u {
	case UnitsHertz:
		return "Frequency"
	case UnitsMillimeters:
		return "Distance"
	case UnitsSeconds:
		return "Time"
	default:
		return ""
	}
}

// ParseAxisUnits accepts the unit symbols printed by AxisUnits.String.
func ParseAxisUnits(s string) (AxisUnits, bool) {
	for _, u := range []AxisUnits{UnitsNone, UnitsHertz, UnitsMillimeters, UnitsSeconds} {
		if u.String() == s {
			return u, true
		}
	}
	return 0, false
}
