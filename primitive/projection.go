package primitive

// Viewport is a rectangle in window pixels. The origin is the bottom left
// corner of the window and Y grows upward.
type Viewport struct {
	X, Y, W, H float64
}

// Empty reports whether the viewport covers no pixels.
func (v Viewport) Empty() bool {
	return v.W <= 0 || v.H <= 0
}

// Contains reports whether the window point (x, y) lies inside v.
func (v Viewport) Contains(x, y float64) bool {
	return x >= v.X && x <= v.X+v.W && y >= v.Y && y <= v.Y+v.H
}

// Projection maps a model space rectangle onto a viewport.
type Projection struct {
	Left, Right, Bottom, Top float64
	Viewport                 Viewport
}

// Ortho returns the orthographic projection of [left, right] x [bottom, top]
// onto vp.
func Ortho(left, right, bottom, top float64, vp Viewport) Projection {
	return Projection{Left: left, Right: right, Bottom: bottom, Top: top, Viewport: vp}
}

// Valid reports whether the projection maps a non-degenerate rectangle onto a
// non-empty viewport.
func (p Projection) Valid() bool {
	return p.Left != p.Right && p.Bottom != p.Top && !p.Viewport.Empty()
}

// ToWindow maps a model point to window pixels.
func (p Projection) ToWindow(x, y float64) (float64, float64) {
	vp := p.Viewport
	wx := vp.X + (x-p.Left)/(p.Right-p.Left)*vp.W
	wy := vp.Y + (y-p.Bottom)/(p.Top-p.Bottom)*vp.H
	return wx, wy
}

// ToModel maps window pixels back to model space.
func (p Projection) ToModel(wx, wy float64) (float64, float64) {
	vp := p.Viewport
	x := p.Left + (wx-vp.X)/vp.W*(p.Right-p.Left)
	y := p.Bottom + (wy-vp.Y)/vp.H*(p.Top-p.Bottom)
	return x, y
}

// PolygonMode selects whether quads are filled or outlined.
type PolygonMode uint8

const (
	Fill PolygonMode = iota
	Outline
)

// State is the drawing state applied to subsequent submissions.
type State struct {
	Projection Projection
	// ScaleY scales model Y about zero before projection. Zero means 1.
	ScaleY float64
	// LineWidth overrides the primitive's line width when positive.
	LineWidth float64
	Mode      PolygonMode
	// Depth orders overlapping submissions for identification. Smaller is
	// closer to the viewer.
	Depth float64
}

func (s State) scaleY() float64 {
	if s.ScaleY == 0 {
		return 1
	}
	return s.ScaleY
}

// Width returns the line width in pixels a submission of p is drawn with.
func (s State) Width(p *Primitive) float64 {
	switch {
	case s.LineWidth > 0:
		return s.LineWidth
	case p != nil && p.LineWidth > 0:
		return p.LineWidth
	default:
		return 1
	}
}

// Project maps model vertex v to window pixels under s.
func (s State) Project(v Vertex) (float64, float64) {
	return s.Projection.ToWindow(v.X, v.Y*s.scaleY())
}
