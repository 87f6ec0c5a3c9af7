// Package gioui draws chart primitives and labels into a gio operation list.
package gioui

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/x/stroke"
	"git.sr.ht/~whereswaldon/brainchart/chart"
	"git.sr.ht/~whereswaldon/brainchart/primitive"
	"github.com/chewxy/math32"
)

// Canvas implements primitive.Drawer, chart.TextMetrics and chart.TextDrawer
// for one gio frame. Chart window coordinates have their origin at the
// bottom left of the area passed to Begin, so every y is flipped.
type Canvas struct {
	shaper *text.Shaper
	gtx    layout.Context
	height float32
	state  primitive.State
	// scratch receives the operations of text that is only measured.
	scratch op.Ops
}

func New(shaper *text.Shaper) *Canvas {
	return &Canvas{shaper: shaper}
}

// Begin targets the canvas at gtx for one frame. The chart area is
// gtx.Constraints.Max.
func (c *Canvas) Begin(gtx layout.Context) {
	c.gtx = gtx
	c.height = float32(gtx.Constraints.Max.Y)
	c.state = primitive.State{}
}

// Viewport returns the chart viewport covering the frame area.
func (c *Canvas) Viewport() primitive.Viewport {
	return primitive.Viewport{W: float64(c.gtx.Constraints.Max.X), H: float64(c.height)}
}

func (c *Canvas) SetState(s primitive.State) {
	c.state = s
}

func (c *Canvas) Draw(p *primitive.Primitive) {
	c.draw(p, p.Colors)
}

// DrawWithSelection hit-tests p. Nothing is drawn.
func (c *Canvas) DrawWithSelection(p *primitive.Primitive, mx, my float64) (int, float64) {
	return primitive.Identify(p, c.state, mx, my)
}

func (c *Canvas) DrawWithAlternativeColor(p *primitive.Primitive, id primitive.AltColorID) {
	if colors, ok := p.AlternativeColors(id); ok {
		c.draw(p, colors)
	}
}

func (c *Canvas) point(v primitive.Vertex) f32.Point {
	x, y := c.state.Project(v)
	return f32.Pt(float32(x), c.height-float32(y))
}

// clipRect is the current viewport in frame pixels.
func (c *Canvas) clipRect() image.Rectangle {
	vp := c.state.Projection.Viewport
	return image.Rectangle{
		Min: image.Pt(int(math32.Floor(float32(vp.X))), int(math32.Floor(c.height-float32(vp.Y+vp.H)))),
		Max: image.Pt(int(math32.Ceil(float32(vp.X+vp.W))), int(math32.Ceil(c.height-float32(vp.Y)))),
	}
}

func (c *Canvas) draw(p *primitive.Primitive, colors []color.NRGBA) {
	if c.gtx.Ops == nil || p.Empty() || !c.state.Projection.Valid() {
		return
	}
	ops := c.gtx.Ops
	defer clip.Rect(c.clipRect()).Push(ops).Pop()
	width := float32(c.state.Width(p))

	switch p.Kind {
	case primitive.Quads:
		for i := 0; i+3 < len(p.Vertices); i += 4 {
			a, b := c.point(p.Vertices[i]), c.point(p.Vertices[i+1])
			cc, d := c.point(p.Vertices[i+2]), c.point(p.Vertices[i+3])
			if c.state.Mode == primitive.Outline {
				var path stroke.Path
				path.Segments = []stroke.Segment{
					stroke.MoveTo(a), stroke.LineTo(b), stroke.LineTo(cc), stroke.LineTo(d), stroke.LineTo(a),
				}
				paint.FillShape(ops, colors[i], stroke.Stroke{Path: path, Width: width, Join: stroke.BevelJoin}.Op(ops))
				continue
			}
			var path clip.Path
			path.Begin(ops)
			path.MoveTo(a)
			path.LineTo(b)
			path.LineTo(cc)
			path.LineTo(d)
			path.Close()
			paint.FillShape(ops, colors[i], clip.Outline{Path: path.End()}.Op())
		}
	case primitive.Lines:
		for i := 0; i+1 < len(p.Vertices); i += 2 {
			var path stroke.Path
			path.Segments = []stroke.Segment{
				stroke.MoveTo(c.point(p.Vertices[i])),
				stroke.LineTo(c.point(p.Vertices[i+1])),
			}
			paint.FillShape(ops, colors[i], stroke.Stroke{Path: path, Width: width, Cap: stroke.FlatCap}.Op(ops))
		}
	case primitive.LineStrip:
		// Runs of one color share a single stroke.
		start := 0
		for start < len(p.Vertices)-1 {
			end := start + 1
			for end < len(p.Vertices)-1 && colors[end] == colors[start] {
				end++
			}
			var path stroke.Path
			path.Segments = append(path.Segments, stroke.MoveTo(c.point(p.Vertices[start])))
			for k := start + 1; k <= end; k++ {
				path.Segments = append(path.Segments, stroke.LineTo(c.point(p.Vertices[k])))
			}
			paint.FillShape(ops, colors[start], stroke.Stroke{Path: path, Width: width, Join: stroke.RoundJoin}.Op(ops))
			start = end
		}
	}
}

// label records txt in its style and returns its size. Sizes are in pixels,
// so text is shaped with one pixel per sp and never wraps.
func (c *Canvas) label(ops *op.Ops, txt string, style chart.TextStyle) (layout.Dimensions, op.CallOp) {
	gtx := c.gtx
	gtx.Ops = ops
	gtx.Metric = unit.Metric{PxPerDp: 1, PxPerSp: 1}
	gtx.Constraints = layout.Constraints{Max: image.Pt(1<<20, 1<<20)}
	mat := op.Record(ops)
	paint.ColorOp{Color: style.Color}.Add(ops)
	material := mat.Stop()

	macro := op.Record(ops)
	dims := widget.Label{MaxLines: 1}.Layout(gtx, c.shaper, font.Font{}, unit.Sp(style.Size), txt, material)
	return dims, macro.Stop()
}

// Measure implements chart.TextMetrics.
func (c *Canvas) Measure(txt string, style chart.TextStyle) (float64, float64) {
	if txt == "" || c.shaper == nil {
		return 0, 0
	}
	c.scratch.Reset()
	dims, _ := c.label(&c.scratch, txt, style)
	return float64(dims.Size.X), float64(dims.Size.Y)
}

// DrawText implements chart.TextDrawer.
func (c *Canvas) DrawText(l chart.TextLabel) {
	if l.Text == "" || c.shaper == nil || c.gtx.Ops == nil {
		return
	}
	ops := c.gtx.Ops
	dims, call := c.label(ops, l.Text, l.Style)
	w, h := float32(dims.Size.X), float32(dims.Size.Y)
	ax, ay := float32(l.AnchorX)*w, float32(l.AnchorY)*h
	x, y := float32(l.X), float32(l.Y)
	// The label is laid out from its top left corner with y down.
	sin, cos := math32.Sincos(float32(l.Rotation))
	tr := f32.NewAffine2D(
		cos, sin, x-cos*ax-sin*(h-ay),
		-sin, cos, c.height-y+sin*ax-cos*(h-ay),
	)
	defer op.Affine(tr).Push(ops).Pop()
	call.Add(ops)
}

// DrawTitles draws the axis titles of a visual chart pass.
func (c *Canvas) DrawTitles(titles []chart.TitleLabel) {
	for _, t := range titles {
		c.DrawText(t.TextLabel)
	}
}
