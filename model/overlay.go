package model

import (
	"fmt"
	"slices"
	"strings"
)

// Overlay is one layer of a chart: a selected source drawn against either
// the left or the right axis.
type Overlay struct {
	parent *OverlaySet

	Enabled bool
	// SourceName selects a source of the parent set by name. Empty selects
	// the first source.
	SourceName string
	// MapIndex selects the map of a histogram source.
	MapIndex       int
	TriangularMode TriangularMode
	// SelectedRows and SelectedColumns are highlighted on matrix charts.
	SelectedRows    []int
	SelectedColumns []int

	verticalAxis AxisLocation
	resolved     *Source
}

// Set returns the overlay set the overlay belongs to.
func (o *Overlay) Set() *OverlaySet {
	return o.parent
}

// VerticalAxis returns the side whose axis the overlay is drawn against.
func (o *Overlay) VerticalAxis() AxisLocation {
	return o.verticalAxis
}

// SetVerticalAxis selects the left or right axis. It panics on Top or
// Bottom.
func (o *Overlay) SetVerticalAxis(loc AxisLocation) {
	if !loc.IsVertical() {
		panic(fmt.Sprintf("model: overlay vertical axis set to %v", loc))
	}
	o.verticalAxis = loc
}

// Selection returns the source resolved by the last RefreshSelection of the
// parent set.
func (o *Overlay) Selection() (*Source, bool) {
	return o.resolved, o.resolved != nil
}

// ToggleRow adds row to the selected rows or removes it.
func (o *Overlay) ToggleRow(row int) {
	o.SelectedRows = toggle(o.SelectedRows, row)
}

// ToggleColumn adds col to the selected columns or removes it.
func (o *Overlay) ToggleColumn(col int) {
	o.SelectedColumns = toggle(o.SelectedColumns, col)
}

func toggle(s []int, v int) []int {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return append(s, v)
}

// DefaultMatrixZoom is the zoom percentage at which the matrix fills the
// chart.
const DefaultMatrixZoom = 100

// OverlaySet is one chart: an ordered stack of overlays sharing four axes.
// Overlay 0 is the top layer and is drawn last.
type OverlaySet struct {
	kind     ChartKind
	overlays []*Overlay
	axes     [numAxes]*Axis
	sources  []*Source

	// MatrixZoom scales matrix cells in percent.
	MatrixZoom     float64
	ShowMatrixGrid bool
	// HighlightNewest draws the most recent line series entry wider.
	HighlightNewest bool
}

// NewOverlaySet returns a chart of kind with n overlays. Only the first
// overlay starts enabled.
func NewOverlaySet(kind ChartKind, n int) *OverlaySet {
	s := &OverlaySet{
		kind:       kind,
		MatrixZoom: DefaultMatrixZoom,
	}
	for loc := Left; loc < numAxes; loc++ {
		s.axes[loc] = NewAxis(loc)
	}
	for i := 0; i < max(1, n); i++ {
		s.overlays = append(s.overlays, &Overlay{
			parent:       s,
			Enabled:      i == 0,
			verticalAxis: Left,
		})
	}
	return s
}

func (s *OverlaySet) Kind() ChartKind {
	return s.kind
}

// Overlays returns the overlays top first. The slice must not be modified.
func (s *OverlaySet) Overlays() []*Overlay {
	return s.overlays
}

// Overlay returns overlay i.
func (s *OverlaySet) Overlay(i int) *Overlay {
	return s.overlays[i]
}

// Axis returns the descriptor of the axis at loc.
func (s *OverlaySet) Axis(loc AxisLocation) *Axis {
	return s.axes[loc]
}

// Axes returns the four axis descriptors indexed by AxisLocation.
func (s *OverlaySet) Axes() [4]*Axis {
	return s.axes
}

// Sources returns the candidate sources. The slice must not be modified.
func (s *OverlaySet) Sources() []*Source {
	return s.sources
}

// AddSource registers src as a candidate for the overlays. A source with the
// same name replaces the earlier one.
func (s *OverlaySet) AddSource(src *Source) error {
	if !src.Valid() {
		return fmt.Errorf("add source: invalid %v source", src.Kind)
	}
	if src.Kind != s.kind {
		return fmt.Errorf("add source %q: %v source on %v chart", src.Name(), src.Kind, s.kind)
	}
	for i, existing := range s.sources {
		if existing.Name() == src.Name() {
			s.sources[i] = src
			return nil
		}
	}
	s.sources = append(s.sources, src)
	return nil
}

// RemoveSource drops the source called name.
func (s *OverlaySet) RemoveSource(name string) {
	s.sources = slices.DeleteFunc(s.sources, func(src *Source) bool {
		return src.Name() == name
	})
}

func (s *OverlaySet) lookup(name string) *Source {
	if name == "" {
		if len(s.sources) == 0 {
			return nil
		}
		return s.sources[0]
	}
	for _, src := range s.sources {
		if src.Name() == name {
			return src
		}
	}
	return nil
}

// RefreshSelection resolves the source of every overlay and recomputes which
// axes the chart uses and their derived titles. It must run after any change
// to overlays or sources and before drawing.
func (s *OverlaySet) RefreshSelection() {
	var sideNames [numAxes][]string
	var used [numAxes]bool
	for _, o := range s.overlays {
		o.resolved = s.lookup(o.SourceName)
		if !o.Enabled || o.resolved == nil {
			continue
		}
		if s.kind == Matrix {
			continue
		}
		used[Bottom] = true
		used[o.verticalAxis] = true
		name := o.resolved.Name()
		if !slices.Contains(sideNames[o.verticalAxis], name) {
			sideNames[o.verticalAxis] = append(sideNames[o.verticalAxis], name)
		}
	}
	for loc, a := range s.axes {
		a.enabledByChart = used[loc]
		a.autoTitle = ""
		if !used[loc] {
			continue
		}
		switch {
		case s.kind == Histogram && loc == int(Bottom):
			a.autoTitle = unitTitle("Value", a.Units)
		case s.kind == Histogram:
			a.autoTitle = "Count"
		case loc == int(Bottom):
			a.autoTitle = unitTitle("", a.Units)
		default:
			a.autoTitle = strings.Join(sideNames[loc], ", ")
		}
	}
}

func unitTitle(fallback string, u AxisUnits) string {
	q := u.Quantity()
	if q == "" {
		return fallback
	}
	return q + " (" + u.String() + ")"
}
