package model

// Source is a chart data object an overlay can select. Exactly one of the
// pointer fields is set, matching Kind.
type Source struct {
	Kind       ChartKind
	Histogram  *HistogramChart
	LineSeries *LineSeriesChart
	Matrix     *MatrixChart
}

func HistogramSource(h *HistogramChart) *Source {
	return &Source{Kind: Histogram, Histogram: h}
}

func LineSeriesSource(c *LineSeriesChart) *Source {
	return &Source{Kind: LineSeries, LineSeries: c}
}

func MatrixSource(m *MatrixChart) *Source {
	return &Source{Kind: Matrix, Matrix: m}
}

// Name returns the name of the wrapped data object.
func (s *Source) Name() string {
	switch {
	case !s.Valid():
		return ""
	case s.Kind == Histogram:
		return s.Histogram.Name()
	case s.Kind == LineSeries:
		return s.LineSeries.Name()
	default:
		return s.Matrix.Name()
	}
}

// Valid reports whether exactly the field matching Kind is set.
func (s *Source) Valid() bool {
	if s == nil {
		return false
	}
	set := 0
	for _, ok := range []bool{s.Histogram != nil, s.LineSeries != nil, s.Matrix != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return false
	}
	switch s.Kind {
	case Histogram:
		return s.Histogram != nil
	case LineSeries:
		return s.LineSeries != nil
	case Matrix:
		return s.Matrix != nil
	default:
		return false
	}
}
