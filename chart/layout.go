package chart

import "git.sr.ht/~whereswaldon/brainchart/primitive"

// Layout shrinks vp by the margins and builds the frame drawn around the
// data area. A viewport smaller than three margin floors in either direction
// is used whole, without frame or axes; framed reports which happened.
//
// The border is four segments inset by half the border width so the whole
// stroke lies inside the data area. The vertical segments stop a border width
// short of each end so the corners are not covered twice.
func Layout(vp primitive.Viewport, m Margins, style Style) (inner primitive.Viewport, border *primitive.Primitive, framed bool) {
	floor := style.MarginFloor
	if vp.W < 3*floor || vp.H < 3*floor {
		return vp, nil, false
	}
	inner = primitive.Viewport{
		X: vp.X + m.Left,
		Y: vp.Y + m.Bottom,
		W: vp.W - m.Left - m.Right,
		H: vp.H - m.Bottom - m.Top,
	}
	if inner.Empty() {
		return vp, nil, false
	}

	bw := style.BorderWidth
	if bw <= 0 {
		bw = 1
	}
	half := bw / 2
	x0, y0 := inner.X, inner.Y
	x1, y1 := inner.X+inner.W, inner.Y+inner.H
	border = primitive.New(primitive.Lines, bw)
	c := style.Foreground
	border.AddSegment(0, x0, y0+half, x1, y0+half, c)
	border.AddSegment(1, x1-half, y0+bw, x1-half, y1-bw, c)
	border.AddSegment(2, x1, y1-half, x0, y1-half, c)
	border.AddSegment(3, x0+half, y1-bw, x0+half, y0+bw, c)
	return inner, border, true
}

// WindowProjection maps window pixels onto themselves within vp.
func WindowProjection(vp primitive.Viewport) primitive.Projection {
	return primitive.Ortho(vp.X, vp.X+vp.W, vp.Y, vp.Y+vp.H, vp)
}
