package chart

import (
	"git.sr.ht/~whereswaldon/brainchart/model"
	"git.sr.ht/~whereswaldon/brainchart/primitive"
	"git.sr.ht/~whereswaldon/brainchart/scale"
)

// axisDecor holds the tick marks, labels and title of one side.
type axisDecor struct {
	labels []TextLabel
	title  *TitleLabel
}

// decorateAxis appends the tick marks of the axis at loc to ticks and
// returns its labels and title positioned around inner.
func decorateAxis(loc model.AxisLocation, a *model.Axis, r scale.Result, inner primitive.Viewport, ticks *primitive.Primitive, tm TextMetrics, style Style) axisDecor {
	var d axisDecor
	if !r.Valid {
		return d
	}
	e := measureAxis(loc, a, r, tm, style)
	ls := TextStyle{Size: style.LabelSize, Color: style.Foreground}
	last := len(r.Offsets) - 1
	x0, y0 := inner.X, inner.Y
	x1, y1 := inner.X+inner.W, inner.Y+inner.H
	for i, off := range r.Offsets {
		// Endpoint labels align with the frame corner instead of centering.
		along := 0.5
		switch i {
		case 0:
			along = 0
		case last:
			along = 1
		}
		l := TextLabel{Text: r.Labels[i], Style: ls}
		var tx0, ty0, tx1, ty1 float64
		switch loc {
		case model.Bottom:
			x := x0 + off
			tx0, ty0, tx1, ty1 = x, y0, x, y0-e.ticks
			l.X, l.Y, l.AnchorX, l.AnchorY = x, y0-e.ticks, along, 1
		case model.Top:
			x := x0 + off
			tx0, ty0, tx1, ty1 = x, y1, x, y1+e.ticks
			l.X, l.Y, l.AnchorX, l.AnchorY = x, y1+e.ticks, along, 0
		case model.Left:
			y := y0 + off
			tx0, ty0, tx1, ty1 = x0, y, x0-e.ticks, y
			l.X, l.Y, l.AnchorX, l.AnchorY = x0-e.ticks, y, 1, along
		case model.Right:
			y := y0 + off
			tx0, ty0, tx1, ty1 = x1, y, x1+e.ticks, y
			l.X, l.Y, l.AnchorX, l.AnchorY = x1+e.ticks, y, 0, along
		}
		if e.ticks > 0 && r.ShowTick(i) {
			ticks.AddSegment(i, tx0, ty0, tx1, ty1, style.Foreground)
		}
		if l.Text != "" {
			d.labels = append(d.labels, l)
		}
	}

	text := a.DisplayTitle()
	if text == "" {
		return d
	}
	gap := e.ticks + e.labels + style.TitlePadding
	t := &TitleLabel{
		Axis: loc,
		TextLabel: TextLabel{
			Text:  text,
			Style: TextStyle{Size: style.TitleSize, Color: style.Foreground},
		},
	}
	cx, cy := x0+inner.W/2, y0+inner.H/2
	switch loc {
	case model.Bottom:
		t.X, t.Y, t.AnchorX, t.AnchorY = cx, y0-gap, 0.5, 1
	case model.Top:
		t.X, t.Y, t.AnchorX, t.AnchorY = cx, y1+gap, 0.5, 0
	case model.Left:
		// Rotated a quarter turn the label's bottom faces the data area.
		t.X, t.Y, t.AnchorX, t.AnchorY, t.Rotation = x0-gap, cy, 0.5, 0, Quarter
	case model.Right:
		t.X, t.Y, t.AnchorX, t.AnchorY, t.Rotation = x1+gap, cy, 0.5, 1, Quarter
	}
	d.title = t
	return d
}
