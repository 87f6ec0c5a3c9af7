package chart

import (
	"git.sr.ht/~whereswaldon/brainchart/internal/mathx"
	"git.sr.ht/~whereswaldon/brainchart/model"
	"git.sr.ht/~whereswaldon/brainchart/scale"
)

// Margins are the space in viewport pixels reserved around the data area.
type Margins struct {
	Left, Right, Bottom, Top float64
}

func (m *Margins) set(loc model.AxisLocation, v float64) {
	switch loc {
	case model.Left:
		m.Left = v
	case model.Right:
		m.Right = v
	case model.Bottom:
		m.Bottom = v
	case model.Top:
		m.Top = v
	}
}

// Side returns the margin at loc.
func (m Margins) Side(loc model.AxisLocation) float64 {
	switch loc {
	case model.Left:
		return m.Left
	case model.Right:
		return m.Right
	case model.Bottom:
		return m.Bottom
	default:
		return m.Top
	}
}

// AxisBounds are the data extents gathered from a chart's overlays.
type AxisBounds struct {
	X           mathx.Extent
	Left, Right mathx.Extent
}

// For returns the extent the axis at loc covers.
func (b AxisBounds) For(loc model.AxisLocation) mathx.Extent {
	switch loc {
	case model.Left:
		return b.Left
	case model.Right:
		return b.Right
	default:
		return b.X
	}
}

// computeScale lays out axis a over ext. A missing extent yields an invalid
// result unless the axis has a user range.
func computeScale(a *model.Axis, ext mathx.Extent, length float64) scale.Result {
	cfg := scale.DefaultConfig()
	if a != nil {
		cfg = a.Scale
	}
	if !ext.Set && cfg.RangeMode != scale.RangeUser {
		return scale.Result{}
	}
	return scale.Compute(ext.Min, ext.Max, length, cfg)
}

// axisExtent is the off-axis space taken by one side's ticks and labels.
type axisExtent struct {
	labels float64
	ticks  float64
}

func measureAxis(loc model.AxisLocation, a *model.Axis, r scale.Result, tm TextMetrics, style Style) axisExtent {
	var e axisExtent
	if !r.Valid {
		return e
	}
	ls := TextStyle{Size: style.LabelSize}
	for _, l := range r.Labels {
		if l == "" {
			continue
		}
		w, h := tm.Measure(l, ls)
		if loc.IsVertical() {
			e.labels = max(e.labels, w)
		} else {
			e.labels = max(e.labels, h)
		}
	}
	if a.Scale.ShowTicks && r.HasTickMarks() {
		e.ticks = style.TickLength
	}
	return e
}

// titleExtent returns the off-axis size of a's title including its padding.
func titleExtent(loc model.AxisLocation, a *model.Axis, tm TextMetrics, style Style) float64 {
	title := a.DisplayTitle()
	if title == "" {
		return 0
	}
	w, h := tm.Measure(title, TextStyle{Size: style.TitleSize})
	if loc.IsVertical() {
		// Drawn a quarter turn rotated.
		w, h = h, w
		return w + style.TitlePadding
	}
	return h + style.TitlePadding
}

// estimateLength is the axis length of the first measuring pass, large
// enough for the densest labeling a chart is likely to get.
const estimateLength = 4096

// candidateExtent measures every labeling the axis can get at any length up
// to the viewport's, plus the labeling at estimateLength. The inner length
// chosen later is never longer than the viewport, so the labels actually
// drawn are never wider than the result.
func candidateExtent(loc model.AxisLocation, a *model.Axis, ext mathx.Extent, length float64, tm TextMetrics, style Style) (axisExtent, bool) {
	cfg := a.Scale
	if !ext.Set && cfg.RangeMode != scale.RangeUser {
		return axisExtent{}, false
	}
	results := scale.Candidates(ext.Min, ext.Max, length, cfg)
	if dense := scale.Compute(ext.Min, ext.Max, estimateLength, cfg); dense.Valid {
		results = append(results, dense)
	}
	var e axisExtent
	measured := make(map[string]bool)
	valid := false
	for _, r := range results {
		if !r.Valid {
			continue
		}
		valid = true
		unique := scale.Result{Valid: true, Offsets: r.Offsets}
		for _, l := range r.Labels {
			if !measured[l] {
				measured[l] = true
				unique.Labels = append(unique.Labels, l)
			}
		}
		re := measureAxis(loc, a, unique, tm, style)
		e.labels = max(e.labels, re.labels)
		e.ticks = max(e.ticks, re.ticks)
	}
	return e, valid
}

// EstimateMargins returns the space each side needs for its ticks, labels and
// title when the chart fills a vpW x vpH viewport. Sides without a visible
// axis, or whose axis has no drawable range, get the floor only.
//
// The labels are measured before the data area is known, so every labeling
// the final, shorter axis could get is measured and the widest wins.
func EstimateMargins(bounds AxisBounds, vpW, vpH float64, axes [4]*model.Axis, tm TextMetrics, style Style) Margins {
	var m Margins
	for loc, a := range axes {
		loc := model.AxisLocation(loc)
		if !a.Visible() {
			continue
		}
		length := vpW
		if loc.IsVertical() {
			length = vpH
		}
		e, ok := candidateExtent(loc, a, bounds.For(loc), length, tm, style)
		if !ok {
			continue
		}
		m.set(loc, e.labels+e.ticks+titleExtent(loc, a, tm, style))
	}
	for loc := model.Left; loc <= model.Bottom; loc++ {
		v := m.Side(loc)
		if v > style.MarginFloor {
			v += style.MarginPadding
		} else {
			v = style.MarginFloor
		}
		m.set(loc, v)
	}
	return m
}
