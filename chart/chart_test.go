package chart

import (
	"bytes"
	"log/slog"
	"testing"

	"git.sr.ht/~whereswaldon/brainchart/model"
	"git.sr.ht/~whereswaldon/brainchart/primitive"
	"git.sr.ht/~whereswaldon/brainchart/primitive/drawtest"
	"git.sr.ht/~whereswaldon/brainchart/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMetrics measures every glyph as 0.6 em wide and one em tall.
type fixedMetrics struct {
	drawn []TextLabel
}

func (f *fixedMetrics) Measure(text string, style TextStyle) (float64, float64) {
	return float64(len(text)) * 0.6 * style.Size, style.Size
}

func (f *fixedMetrics) DrawText(l TextLabel) {
	f.drawn = append(f.drawn, l)
}

func histogramSet(t *testing.T, counts ...float64) (*model.OverlaySet, *model.HistogramChart) {
	t.Helper()
	set := model.NewOverlaySet(model.Histogram, 1)
	h := model.NewHistogramChart("volume")
	h.SetBuckets(0, model.Buckets{Min: 0, Max: 10, Counts: counts})
	require.NoError(t, set.AddSource(model.HistogramSource(h)))
	set.RefreshSelection()
	return set, h
}

func newTestRenderer() (*Renderer, *drawtest.Recorder, *fixedMetrics, *selection.Manager) {
	rec := &drawtest.Recorder{}
	tm := &fixedMetrics{}
	sel := selection.NewManager()
	return NewRenderer(rec, tm, sel, DefaultStyle()), rec, tm, sel
}

// stateOf returns the state p was last drawn with.
func stateOf(t *testing.T, rec *drawtest.Recorder, p *primitive.Primitive) primitive.State {
	t.Helper()
	for i := len(rec.Calls) - 1; i >= 0; i-- {
		if rec.Calls[i].Primitive == p {
			return rec.Calls[i].State
		}
	}
	require.FailNow(t, "primitive was never drawn")
	return primitive.State{}
}

var viewport = primitive.Viewport{X: 0, Y: 0, W: 400, H: 300}

func TestMarginsMonotoneInFontSize(t *testing.T) {
	set, _ := histogramSet(t, 1, 40000, 2, 3)
	bounds := AxisBounds{}
	bounds.X.Include(0)
	bounds.X.Include(10)
	bounds.Left.Include(0)
	bounds.Left.Include(40000)

	var prev Margins
	var first Margins
	for size := 4.0; size <= 32; size += 2 {
		style := DefaultStyle()
		style.LabelSize = size
		m := EstimateMargins(bounds, 400, 300, set.Axes(), &fixedMetrics{}, style)
		for _, loc := range []model.AxisLocation{model.Left, model.Right, model.Top, model.Bottom} {
			assert.GreaterOrEqual(t, m.Side(loc), prev.Side(loc), "%v at size %v", loc, size)
			assert.GreaterOrEqual(t, m.Side(loc), style.MarginFloor)
		}
		if size == 4 {
			first = m
		}
		prev = m
	}
	assert.Greater(t, prev.Left, first.Left)
	assert.Greater(t, prev.Bottom, first.Bottom)
	assert.Equal(t, DefaultStyle().MarginFloor, prev.Right, "unused sides get the floor")
	assert.Equal(t, DefaultStyle().MarginFloor, prev.Top)
}

func TestMarginsHiddenAxes(t *testing.T) {
	set, _ := histogramSet(t, 1, 2, 3)
	set.Axis(model.Left).Displayed = false
	bounds := AxisBounds{}
	bounds.X.Include(0)
	bounds.X.Include(10)
	bounds.Left.Include(0)
	bounds.Left.Include(3)
	style := DefaultStyle()
	m := EstimateMargins(bounds, 400, 300, set.Axes(), &fixedMetrics{}, style)
	assert.Equal(t, style.MarginFloor, m.Left)
	assert.Greater(t, m.Bottom, style.MarginFloor)
}

func TestLayoutUndersized(t *testing.T) {
	vp := primitive.Viewport{X: 0, Y: 0, W: 20, H: 20}
	inner, border, framed := Layout(vp, Margins{Left: 10, Right: 10, Bottom: 10, Top: 10}, DefaultStyle())
	assert.Equal(t, vp, inner)
	assert.Nil(t, border)
	assert.False(t, framed)

	// Margins that consume the whole viewport fall back the same way.
	vp = primitive.Viewport{W: 60, H: 60}
	inner, _, framed = Layout(vp, Margins{Left: 40, Right: 30, Bottom: 10, Top: 10}, DefaultStyle())
	assert.Equal(t, vp, inner)
	assert.False(t, framed)
}

func TestLayoutBorder(t *testing.T) {
	style := DefaultStyle()
	style.BorderWidth = 2
	inner, border, framed := Layout(primitive.Viewport{W: 100, H: 100}, Margins{Left: 10, Right: 10, Bottom: 10, Top: 10}, style)
	require.True(t, framed)
	assert.Equal(t, primitive.Viewport{X: 10, Y: 10, W: 80, H: 80}, inner)
	require.Len(t, border.Vertices, 8)
	assert.Equal(t, 2.0, border.LineWidth)
	// Bottom spans the full width one half width above the edge.
	assert.Equal(t, primitive.Vertex{X: 10, Y: 11}, border.Vertices[0])
	assert.Equal(t, primitive.Vertex{X: 90, Y: 11}, border.Vertices[1])
	// Right is shortened by the border width at both ends.
	assert.Equal(t, primitive.Vertex{X: 89, Y: 12}, border.Vertices[2])
	assert.Equal(t, primitive.Vertex{X: 89, Y: 88}, border.Vertices[3])
}

func TestDrawEmptyInputSubmitsNothing(t *testing.T) {
	r, rec, tm, _ := newTestRenderer()

	empty := model.NewOverlaySet(model.Histogram, 2)
	empty.RefreshSelection()
	assert.Empty(t, r.Draw(Frame{Set: empty, Viewport: viewport}))

	flat, _ := histogramSet(t, 0, 0, 0)
	assert.Empty(t, r.Draw(Frame{Set: flat, Viewport: viewport}))

	assert.Nil(t, r.Draw(Frame{Viewport: viewport}))
	assert.Empty(t, rec.Calls)
	assert.Empty(t, tm.drawn)
}

func TestDrawHistogram(t *testing.T) {
	set, h := histogramSet(t, 1, 4, 2, 3, 0)
	r, rec, tm, _ := newTestRenderer()

	titles := r.Draw(Frame{Set: set, Viewport: viewport})
	require.Len(t, titles, 2)
	byAxis := map[model.AxisLocation]TitleLabel{}
	for _, tl := range titles {
		byAxis[tl.Axis] = tl
	}
	assert.Equal(t, "Value", byAxis[model.Bottom].Text)
	assert.Equal(t, "Count", byAxis[model.Left].Text)
	assert.Equal(t, Quarter, byAxis[model.Left].Rotation)
	assert.NotEmpty(t, tm.drawn, "tick labels go to the text drawer")

	prims := h.Primitives(0)
	// border, ticks, bars, envelope
	assert.Equal(t, 4, rec.Count(drawtest.OpDraw))
	barState := stateOf(t, rec, prims.Bars)
	envState := stateOf(t, rec, prims.Envelope)
	assert.Equal(t, barState.Projection, envState.Projection)

	lo, hi, ok := set.Axis(model.Bottom).ResolvedRange()
	require.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)
	assert.Equal(t, lo, barState.Projection.Left)
	assert.Equal(t, hi, barState.Projection.Right)

	pal := h.Palette()
	pal.ShowEnvelope = false
	pal.ShowThreshold = true
	pal.ThresholdLow, pal.ThresholdHigh = 2, 6
	h.SetPalette(pal)
	rec.Reset()
	r.Draw(Frame{Set: set, Viewport: viewport})
	prims = h.Primitives(0)
	assert.Equal(t, 4, rec.Count(drawtest.OpDraw), "border, ticks, bars, threshold")
	stateOf(t, rec, prims.Threshold)
}

func TestDrawUndersizedSkipsFrame(t *testing.T) {
	set, h := histogramSet(t, 1, 4, 2)
	r, rec, tm, _ := newTestRenderer()
	vp := primitive.Viewport{W: 20, H: 20}
	titles := r.Draw(Frame{Set: set, Viewport: vp})
	assert.Empty(t, titles)
	assert.Empty(t, tm.drawn)
	assert.Equal(t, 2, rec.Count(drawtest.OpDraw))
	assert.Equal(t, vp, stateOf(t, rec, h.Primitives(0).Bars).Projection.Viewport)
}

func TestUserLockedRangeWins(t *testing.T) {
	set, h := histogramSet(t, 1, 4, 2)
	set.Axis(model.Left).LockRange(-1, 9)
	r, rec, _, _ := newTestRenderer()
	r.Draw(Frame{Set: set, Viewport: viewport})
	lo, hi, ok := set.Axis(model.Left).ResolvedRange()
	require.True(t, ok)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 9.0, hi)
	s := stateOf(t, rec, h.Primitives(0).Bars)
	assert.Equal(t, -1.0, s.Projection.Bottom)
	assert.Equal(t, 9.0, s.Projection.Top)
}

func TestIdentifyHistogram(t *testing.T) {
	set, h := histogramSet(t, 1, 4, 2, 3, 0.5)
	r, rec, _, sel := newTestRenderer()
	r.Draw(Frame{Set: set, Viewport: viewport})
	s := stateOf(t, rec, h.Primitives(0).Bars)
	// Well above the top of bucket 1 ([2, 4]).
	mx, my := s.Projection.ToWindow(3, 3.9)

	rec.Reset()
	sel.Reset()
	titles := r.Draw(Frame{Set: set, Viewport: viewport, Identify: true, MouseX: mx, MouseY: my})
	assert.Nil(t, titles)
	assert.Zero(t, rec.Count(drawtest.OpDraw))
	assert.Equal(t, 1, rec.Count(drawtest.OpSelect))
	require.True(t, sel.Histogram.Valid())
	assert.Equal(t, 1, sel.Histogram.Bucket)
	assert.Equal(t, "volume", sel.Histogram.Source)

	// Disabled kinds do not even hit-test.
	rec.Reset()
	sel.Reset()
	sel.Enable(model.Histogram, false)
	r.Draw(Frame{Set: set, Viewport: viewport, Identify: true, MouseX: mx, MouseY: my})
	assert.Empty(t, rec.Calls)
	assert.False(t, sel.Histogram.Valid())
}

func matrixSet(t *testing.T, overlays int) *model.OverlaySet {
	t.Helper()
	set := model.NewOverlaySet(model.Matrix, overlays)
	for i := 0; i < overlays; i++ {
		m, err := model.NewMatrixChart("m"+string(rune('0'+i)), 3, 3, []float64{
			1, 2, 3,
			4, 5, 6,
			7, 8, 9,
		})
		require.NoError(t, err)
		require.NoError(t, set.AddSource(model.MatrixSource(m)))
		o := set.Overlay(i)
		o.Enabled = true
		o.SourceName = m.Name()
	}
	set.RefreshSelection()
	return set
}

func TestIdentifyMatrixNearestOverlay(t *testing.T) {
	set := matrixSet(t, 3)
	r, rec, _, sel := newTestRenderer()
	titles := r.Draw(Frame{Set: set, Viewport: viewport})
	assert.Empty(t, titles, "matrix charts have no axes")
	// The border, then the overlays back to front.
	require.Equal(t, 4, rec.Count(drawtest.OpDraw))
	assert.Equal(t, WindowProjection(viewport), rec.Calls[0].State.Projection)
	top := rec.Calls[len(rec.Calls)-1]
	assert.Less(t, top.State.Depth, rec.Calls[1].State.Depth)

	// Center of row 1 column 2.
	mx, my := top.State.Projection.ToWindow(2.5, 1.5)
	rec.Reset()
	sel.Reset()
	r.Draw(Frame{Set: set, Viewport: viewport, Identify: true, MouseX: mx, MouseY: my})
	assert.Equal(t, 3, rec.Count(drawtest.OpSelect))
	require.True(t, sel.Matrix.Valid())
	assert.Equal(t, "m0", sel.Matrix.Source)
	assert.Equal(t, 0, sel.Matrix.Overlay)
	assert.Equal(t, 1, sel.Matrix.Row)
	assert.Equal(t, 2, sel.Matrix.Column)
}

func TestIdentifyMatrixRespectsTriangularMode(t *testing.T) {
	set := matrixSet(t, 1)
	set.Overlay(0).TriangularMode = model.LowerNoDiagonal
	r, rec, _, sel := newTestRenderer()
	r.Draw(Frame{Set: set, Viewport: viewport})
	proj := rec.Calls[len(rec.Calls)-1].State.Projection

	// Row 0 column 2 is in the hidden upper triangle.
	mx, my := proj.ToWindow(2.5, 2.5)
	sel.Reset()
	r.Draw(Frame{Set: set, Viewport: viewport, Identify: true, MouseX: mx, MouseY: my})
	assert.False(t, sel.Matrix.Valid())

	// Row 2 column 0 is shown.
	mx, my = proj.ToWindow(0.5, 0.5)
	r.Draw(Frame{Set: set, Viewport: viewport, Identify: true, MouseX: mx, MouseY: my})
	require.True(t, sel.Matrix.Valid())
	assert.Equal(t, 2, sel.Matrix.Row)
	assert.Equal(t, 0, sel.Matrix.Column)
}

func TestMatrixGridAndHighlight(t *testing.T) {
	set := matrixSet(t, 1)
	set.ShowMatrixGrid = true
	o := set.Overlay(0)
	o.TriangularMode = model.LowerNoDiagonal
	o.ToggleRow(2)
	o.ToggleColumn(0)
	r, rec, _, _ := newTestRenderer()
	r.Draw(Frame{Set: set, Viewport: viewport})

	require.Equal(t, 1, rec.Count(drawtest.OpAlternative))
	var alt, hl drawtest.Call
	for _, c := range rec.Calls {
		if c.Op == drawtest.OpAlternative {
			alt = c
		}
	}
	hl = rec.Calls[len(rec.Calls)-1]
	assert.Equal(t, model.GridColor, alt.Alt)
	assert.Equal(t, primitive.Outline, alt.State.Mode)
	assert.Equal(t, primitive.Outline, hl.State.Mode)

	require.Equal(t, 2, hl.Primitive.ItemCount())
	x, y := hl.Primitive.Bounds()
	assert.Equal(t, 0.0, x.Min)
	assert.Equal(t, 2.0, x.Max, "row 2 stops before the diagonal")
	assert.Equal(t, 0.0, y.Min)
	assert.Equal(t, 2.0, y.Max, "column 0 starts below the diagonal")
}

func TestMatrixHighlightClipping(t *testing.T) {
	set := matrixSet(t, 1)
	o := set.Overlay(0)
	o.TriangularMode = model.UpperNoDiagonal
	o.SelectedRows = []int{2, 7}
	o.SelectedColumns = []int{0, 1}
	p := matrixHighlight(o, 3, 3, DefaultStyle())
	// Row 2 and column 0 are empty in the upper triangle; row 7 is out of range.
	require.Equal(t, 1, p.ItemCount())
	assert.Equal(t, 1, p.ID(0))
	x, y := p.Bounds()
	assert.Equal(t, 1.0, x.Min)
	assert.Equal(t, 2.0, x.Max)
	assert.Equal(t, 2.0, y.Min)
	assert.Equal(t, 3.0, y.Max)
}

func TestMatrixProjectionZoom(t *testing.T) {
	inner := primitive.Viewport{X: 10, Y: 10, W: 300, H: 300}
	p := matrixProjection(3, 6, 100, inner)
	assert.Equal(t, primitive.Ortho(0, 6, 0, 3, inner), p)
	p = matrixProjection(3, 6, 200, inner)
	assert.Equal(t, primitive.Ortho(0, 3, 1.5, 3, inner), p)
	p = matrixProjection(3, 6, 0, inner)
	assert.Equal(t, primitive.Ortho(0, 6, 0, 3, inner), p)
}

func lineSet(t *testing.T) (*model.OverlaySet, *model.LineSeriesChart) {
	t.Helper()
	set := model.NewOverlaySet(model.LineSeries, 1)
	c := model.NewLineSeriesChart("lines", 4)
	a := model.NewLine("a")
	a.Insert(0, 0)
	a.Insert(1, 1)
	b := model.NewLine("b")
	b.Insert(0, 5)
	b.Insert(1, 6)
	c.Push(a)
	c.Push(b)
	require.NoError(t, set.AddSource(model.LineSeriesSource(c)))
	set.RefreshSelection()
	return set, c
}

func TestDrawLineSeries(t *testing.T) {
	set, c := lineSet(t)
	set.HighlightNewest = true
	r, rec, _, _ := newTestRenderer()
	titles := r.Draw(Frame{Set: set, Viewport: viewport})
	require.Len(t, titles, 1)
	assert.Equal(t, "lines", titles[0].Text)

	entries := c.Entries()
	older := stateOf(t, rec, entries[0].Primitive)
	newer := stateOf(t, rec, entries[1].Primitive)
	assert.Zero(t, older.LineWidth)
	assert.Equal(t, DefaultStyle().HighlightWidth, newer.LineWidth)
	assert.Less(t, newer.Depth, older.Depth)
	assert.Greater(t, newer.Depth, 0.0)
}

func TestIdentifyLineSeries(t *testing.T) {
	set, c := lineSet(t)
	r, rec, _, sel := newTestRenderer()
	r.Draw(Frame{Set: set, Viewport: viewport})
	s := stateOf(t, rec, c.Entries()[1].Primitive)
	mx, my := s.Projection.ToWindow(0.1, 5.1)

	sel.Reset()
	rec.Reset()
	r.Draw(Frame{Set: set, Viewport: viewport, Identify: true, MouseX: mx, MouseY: my})
	assert.Equal(t, 2, rec.Count(drawtest.OpSelect))
	for _, call := range rec.Calls {
		assert.Equal(t, DefaultStyle().PickLineWidthFactor, call.State.LineWidth, "lines are picked wider")
	}
	require.True(t, sel.LineSeries.Valid())
	assert.Equal(t, 1, sel.LineSeries.Entry)
	assert.Equal(t, 0, sel.LineSeries.Point)
}

func TestRightAxisOverlay(t *testing.T) {
	_, c := lineSet(t)
	other := model.NewLineSeriesChart("other", 1)
	l := model.NewLine("x")
	l.Insert(0, 100)
	l.Insert(2, 300)
	other.Push(l)
	set := model.NewOverlaySet(model.LineSeries, 2)
	require.NoError(t, set.AddSource(model.LineSeriesSource(c)))
	require.NoError(t, set.AddSource(model.LineSeriesSource(other)))
	o := set.Overlay(1)
	o.Enabled = true
	o.SourceName = "other"
	o.SetVerticalAxis(model.Right)
	set.RefreshSelection()

	r, rec, _, _ := newTestRenderer()
	titles := r.Draw(Frame{Set: set, Viewport: viewport})
	assert.Len(t, titles, 2)
	left := stateOf(t, rec, c.Entries()[0].Primitive)
	right := stateOf(t, rec, other.Entries()[0].Primitive)
	assert.Equal(t, left.Projection.Left, right.Projection.Left, "overlays share the X range")
	assert.Equal(t, 2.0, right.Projection.Right)
	assert.GreaterOrEqual(t, right.Projection.Top, 300.0)
	assert.Less(t, left.Projection.Top, 100.0)
}

func TestDegenerateXRangeSubmitsNothing(t *testing.T) {
	set := model.NewOverlaySet(model.Histogram, 1)
	h := model.NewHistogramChart("point")
	h.SetBuckets(0, model.Buckets{Min: 5, Max: 5, Counts: []float64{1, 2}})
	require.NoError(t, set.AddSource(model.HistogramSource(h)))
	set.RefreshSelection()

	lines := model.NewOverlaySet(model.LineSeries, 1)
	c := model.NewLineSeriesChart("single", 1)
	l := model.NewLine("y")
	l.Insert(3, 7)
	c.Push(l)
	require.NoError(t, lines.AddSource(model.LineSeriesSource(c)))
	lines.RefreshSelection()

	for _, s := range []*model.OverlaySet{set, lines} {
		r, rec, tm, sel := newTestRenderer()
		sel.Enable(s.Kind(), true)
		assert.Empty(t, r.Draw(Frame{Set: s, Viewport: viewport}))
		assert.Empty(t, r.Draw(Frame{Set: s, Viewport: viewport, Identify: true, MouseX: 200, MouseY: 150}))
		assert.Empty(t, rec.Calls, "%v", s.Kind())
		assert.Empty(t, tm.drawn)
		_, hit := sel.Hit(s.Kind())
		assert.False(t, hit)
	}
}

func TestRightAxisOnlyStillDraws(t *testing.T) {
	set, c := lineSet(t)
	set.Overlay(0).SetVerticalAxis(model.Right)
	set.RefreshSelection()
	assert.False(t, set.Axis(model.Left).Visible())

	r, rec, _, _ := newTestRenderer()
	titles := r.Draw(Frame{Set: set, Viewport: viewport})
	require.Len(t, titles, 1)
	assert.Equal(t, model.Right, titles[0].Axis)
	assert.Positive(t, rec.Count(drawtest.OpDraw))
	s := stateOf(t, rec, c.Entries()[1].Primitive)
	assert.GreaterOrEqual(t, s.Projection.Top, 6.0)
}

func TestSkippedOverlaysAreLogged(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	set := model.NewOverlaySet(model.Histogram, 3)
	h := model.NewHistogramChart("volume")
	h.SetBuckets(0, model.Buckets{Min: 0, Max: 10, Counts: []float64{1, 2, 3}})
	require.NoError(t, set.AddSource(model.HistogramSource(h)))
	set.Overlay(0).SourceName = "volume"
	o := set.Overlay(1)
	o.Enabled = true
	o.SourceName = "missing"
	o = set.Overlay(2)
	o.Enabled = true
	o.SourceName = "volume"
	o.MapIndex = 4
	set.RefreshSelection()

	r, rec, _, _ := newTestRenderer()
	r.Draw(Frame{Set: set, Viewport: viewport})
	assert.NotEmpty(t, rec.Calls, "the valid overlay is still drawn")
	out := buf.String()
	assert.Contains(t, out, "overlay has no source")
	assert.Contains(t, out, "source=missing")
	assert.Contains(t, out, "overlay has no data bounds")
}
