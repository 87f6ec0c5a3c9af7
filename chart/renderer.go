// Package chart draws overlay sets: it lays out axes and margins from text
// metrics, projects every overlay onto the data area and submits the cached
// primitives of each chart kind, or hit-tests them during identification.
package chart

import (
	"git.sr.ht/~whereswaldon/brainchart/internal/mathx"
	"git.sr.ht/~whereswaldon/brainchart/model"
	"git.sr.ht/~whereswaldon/brainchart/primitive"
	"git.sr.ht/~whereswaldon/brainchart/scale"
	"git.sr.ht/~whereswaldon/brainchart/selection"
)

// Frame is one request to draw or identify a chart.
type Frame struct {
	Set      *model.OverlaySet
	Viewport primitive.Viewport
	// Identify hit-tests the chart at (MouseX, MouseY) instead of drawing
	// it. Hits go to the renderer's selection manager.
	Identify       bool
	MouseX, MouseY float64
}

// Renderer draws overlay sets through a primitive.Drawer.
type Renderer struct {
	Drawer    primitive.Drawer
	Text      TextMetrics
	Selection *selection.Manager
	Style     Style
}

func NewRenderer(d primitive.Drawer, tm TextMetrics, sel *selection.Manager, style Style) *Renderer {
	return &Renderer{Drawer: d, Text: tm, Selection: sel, Style: style}
}

// item is one overlay that takes part in a frame.
type item struct {
	index   int
	overlay *model.Overlay
	src     *model.Source
	side    model.AxisLocation
	depth   float64
	x, y    mathx.Extent
}

func (it item) origin() selection.Origin {
	return selection.Origin{Overlay: it.index, Source: it.src.Name()}
}

// gather walks the overlays back to front and collects the drawable ones
// together with the accumulated data bounds.
func gather(set *model.OverlaySet) ([]item, AxisBounds) {
	var (
		items  []item
		bounds AxisBounds
	)
	overlays := set.Overlays()
	n := len(overlays)
	for i := n - 1; i >= 0; i-- {
		o := overlays[i]
		if !o.Enabled {
			continue
		}
		src, ok := o.Selection()
		if !ok {
			Logger().Debug("overlay has no source", "overlay", i, "source", o.SourceName)
			continue
		}
		if src.Kind != set.Kind() {
			Logger().Debug("overlay source has the wrong kind", "overlay", i, "source", src.Name(), "kind", src.Kind, "chart", set.Kind())
			continue
		}
		it := item{
			index:   i,
			overlay: o,
			src:     src,
			side:    o.VerticalAxis(),
			depth:   float64(i+1) / float64(n+1),
		}
		switch src.Kind {
		case model.Histogram:
			it.x, it.y = src.Histogram.Bounds(o.MapIndex)
		case model.LineSeries:
			it.x, it.y = src.LineSeries.Bounds()
		case model.Matrix:
			it.x, it.y = src.Matrix.Bounds()
			it.side = model.Left
		}
		if !it.x.Set || !it.y.Set {
			Logger().Debug("overlay has no data bounds", "overlay", i, "source", src.Name())
			continue
		}
		items = append(items, it)
		bounds.X.Union(it.x)
		if it.side == model.Right {
			bounds.Right.Union(it.y)
		} else {
			bounds.Left.Union(it.y)
		}
	}
	return items, bounds
}

// ranges are the resolved axis ranges of a frame.
type ranges struct {
	x           scale.Result
	left, right scale.Result
}

func (r ranges) side(loc model.AxisLocation) scale.Result {
	if loc == model.Right {
		return r.right
	}
	return r.left
}

func (r ranges) valid() bool {
	return r.x.Valid && (r.left.Valid || r.right.Valid)
}

// Draw runs one frame. In the visual pass it returns the axis titles, which
// the caller draws after the chart; identification returns nil.
//
// A frame with nothing to show submits nothing. Missing data, degenerate
// ranges and tiny viewports skip work rather than fail.
func (r *Renderer) Draw(f Frame) []TitleLabel {
	set := f.Set
	if set == nil || f.Viewport.Empty() {
		return nil
	}
	if f.Identify && (r.Selection == nil || !r.Selection.Enabled(set.Kind())) {
		return nil
	}

	items, bounds := gather(set)
	if !bounds.X.Valid() || !(bounds.Left.Valid() || bounds.Right.Valid()) {
		Logger().Debug("chart has no drawable bounds", "kind", set.Kind(), "overlays", len(items))
		return nil
	}

	axes := set.Axes()
	margins := EstimateMargins(bounds, f.Viewport.W, f.Viewport.H, axes, r.Text, r.Style)
	inner, border, framed := Layout(f.Viewport, margins, r.Style)

	rg := ranges{
		x:     computeScale(axes[model.Bottom], bounds.X, inner.W),
		left:  computeScale(axes[model.Left], bounds.Left, inner.H),
		right: computeScale(axes[model.Right], bounds.Right, inner.H),
	}
	for _, loc := range []model.AxisLocation{model.Bottom, model.Left, model.Right} {
		var res scale.Result
		if loc == model.Bottom {
			res = rg.x
		} else {
			res = rg.side(loc)
		}
		if res.Valid && axes[loc] != nil {
			axes[loc].SetResolvedRange(res.Min, res.Max)
		}
	}
	if axes[model.Top] != nil && rg.x.Valid {
		axes[model.Top].SetResolvedRange(rg.x.Min, rg.x.Max)
	}
	if !rg.valid() {
		Logger().Debug("chart has no drawable range", "kind", set.Kind())
		return nil
	}

	var titles []TitleLabel
	if !f.Identify && framed {
		titles = r.drawFrame(f.Viewport, inner, border, axes, rg)
	}

	for _, it := range items {
		switch it.src.Kind {
		case model.Histogram:
			r.drawHistogram(f, inner, rg, it)
		case model.LineSeries:
			r.drawLineSeries(f, inner, rg, it)
		case model.Matrix:
			r.drawMatrix(f, inner, it)
		}
	}
	return titles
}

// drawFrame draws the border, tick marks and tick labels and returns the
// axis titles.
func (r *Renderer) drawFrame(vp, inner primitive.Viewport, border *primitive.Primitive, axes [4]*model.Axis, rg ranges) []TitleLabel {
	window := primitive.State{Projection: WindowProjection(vp)}
	r.Drawer.SetState(window)
	r.Drawer.Draw(border)

	ticks := primitive.New(primitive.Lines, r.Style.BorderWidth)
	var labels []TextLabel
	var titles []TitleLabel
	for _, loc := range []model.AxisLocation{model.Left, model.Right, model.Top, model.Bottom} {
		a := axes[loc]
		if !a.Visible() {
			continue
		}
		res := rg.x
		if loc.IsVertical() {
			res = rg.side(loc)
		}
		d := decorateAxis(loc, a, res, inner, ticks, r.Text, r.Style)
		labels = append(labels, d.labels...)
		if d.title != nil {
			titles = append(titles, *d.title)
		}
	}
	if !ticks.Empty() {
		r.Drawer.Draw(ticks)
	}
	if td, ok := r.Text.(TextDrawer); ok {
		for _, l := range labels {
			td.DrawText(l)
		}
	}
	return titles
}

func (r *Renderer) drawHistogram(f Frame, inner primitive.Viewport, rg ranges, it item) {
	yr := rg.side(it.side)
	if !yr.Valid {
		return
	}
	s := primitive.State{
		Projection: primitive.Ortho(rg.x.Min, rg.x.Max, yr.Min, yr.Max, inner),
		Depth:      it.depth,
	}
	prims := it.src.Histogram.Primitives(it.overlay.MapIndex)
	if f.Identify {
		s.ScaleY = r.Style.HistogramPickScale
		r.Drawer.SetState(s)
		index, depth := r.Drawer.DrawWithSelection(prims.Bars, f.MouseX, f.MouseY)
		r.Selection.Histogram.TryRecord(it.origin(), it.overlay.MapIndex, index, depth)
		return
	}
	pal := it.src.Histogram.Palette()
	r.Drawer.SetState(s)
	if pal.ShowBars && !prims.Bars.Empty() {
		r.Drawer.Draw(prims.Bars)
	}
	if pal.ShowThreshold && !prims.Threshold.Empty() {
		r.Drawer.Draw(prims.Threshold)
	}
	if pal.ShowEnvelope && !prims.Envelope.Empty() {
		r.Drawer.Draw(prims.Envelope)
	}
}

func (r *Renderer) drawLineSeries(f Frame, inner primitive.Viewport, rg ranges, it item) {
	yr := rg.side(it.side)
	if !yr.Valid {
		return
	}
	proj := primitive.Ortho(rg.x.Min, rg.x.Max, yr.Min, yr.Max, inner)
	entries := it.src.LineSeries.Entries()
	n := len(it.overlay.Set().Overlays())
	// Newer entries sit slightly in front of older ones without crossing
	// into the next overlay's depth.
	step := 1 / float64((n+1)*(len(entries)+1))
	for k, e := range entries {
		if e.Primitive.Empty() {
			continue
		}
		s := primitive.State{Projection: proj, Depth: it.depth - float64(k)*step}
		if f.Identify {
			s.LineWidth = s.Width(e.Primitive) * r.Style.PickLineWidthFactor
			r.Drawer.SetState(s)
			index, depth := r.Drawer.DrawWithSelection(e.Primitive, f.MouseX, f.MouseY)
			r.Selection.LineSeries.TryRecord(it.origin(), e.Serial, index, depth)
			continue
		}
		if it.overlay.Set().HighlightNewest && k == len(entries)-1 {
			s.LineWidth = r.Style.HighlightWidth
		}
		r.Drawer.SetState(s)
		r.Drawer.Draw(e.Primitive)
	}
}

// matrixProjection shows the top left corner of the matrix zoomed by zoom
// percent inside inner.
func matrixProjection(rows, cols int, zoom float64, inner primitive.Viewport) primitive.Projection {
	z := zoom / 100
	if z <= 0 {
		z = 1
	}
	fr, fc := float64(rows), float64(cols)
	return primitive.Ortho(0, fc/z, fr-fr/z, fr, inner)
}

func (r *Renderer) drawMatrix(f Frame, inner primitive.Viewport, it item) {
	m := it.src.Matrix
	set := it.overlay.Set()
	rows, cols := m.Dims()
	s := primitive.State{
		Projection: matrixProjection(rows, cols, set.MatrixZoom, inner),
		Depth:      it.depth,
	}
	cells := m.CellPrimitive(it.overlay.TriangularMode)
	if cells.Empty() {
		return
	}
	r.Drawer.SetState(s)
	if f.Identify {
		index, depth := r.Drawer.DrawWithSelection(cells, f.MouseX, f.MouseY)
		r.Selection.Matrix.TryRecord(it.origin(), index, cols, depth)
		return
	}
	r.Drawer.Draw(cells)

	outline := s
	outline.Mode = primitive.Outline
	if set.ShowMatrixGrid {
		r.Drawer.SetState(outline)
		r.Drawer.DrawWithAlternativeColor(cells, model.GridColor)
	}
	if hl := matrixHighlight(it.overlay, rows, cols, r.Style); !hl.Empty() {
		r.Drawer.SetState(outline)
		r.Drawer.Draw(hl)
	}
}

// matrixHighlight outlines the selected rows and columns of o, clipped to
// the cells its triangular mode shows.
func matrixHighlight(o *model.Overlay, rows, cols int, style Style) *primitive.Primitive {
	p := primitive.New(primitive.Quads, style.HighlightWidth)
	for _, row := range o.SelectedRows {
		if row < 0 || row >= rows {
			continue
		}
		lo, hi := model.RowExtent(o.TriangularMode, row, rows, cols)
		if lo >= hi {
			continue
		}
		y0 := float64(rows - row - 1)
		p.AddQuad(row, float64(lo), y0, float64(hi), y0+1, style.Highlight)
	}
	for _, col := range o.SelectedColumns {
		if col < 0 || col >= cols {
			continue
		}
		lo, hi := model.ColumnExtent(o.TriangularMode, col, rows, cols)
		if lo >= hi {
			continue
		}
		p.AddQuad(col, float64(col), float64(rows-hi), float64(col+1), float64(rows-lo), style.Highlight)
	}
	return p
}
