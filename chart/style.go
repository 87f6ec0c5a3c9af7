package chart

import "image/color"

// Style holds the pixel sizes and colors of the chart frame. Sizes are in
// viewport pixels at the current scale.
type Style struct {
	// MarginFloor is the smallest margin on every side. A viewport narrower
	// or shorter than three floors is drawn without a frame.
	MarginFloor float64
	// MarginPadding is added to a side whose margin exceeds the floor.
	MarginPadding float64
	TickLength    float64
	BorderWidth   float64
	// TitlePadding separates an axis title from the tick labels.
	TitlePadding float64

	LabelSize float64
	TitleSize float64

	// HistogramPickScale stretches histogram bars vertically during
	// identification so a bar is picked anywhere above its base.
	HistogramPickScale float64
	// PickLineWidthFactor widens lines during identification.
	PickLineWidthFactor float64
	// HighlightWidth is the line width of selected matrix rows and columns
	// and the newest line series entry.
	HighlightWidth float64

	Foreground color.NRGBA
	Highlight  color.NRGBA
}

// DefaultStyle returns the style used when none is configured.
func DefaultStyle() Style {
	return Style{
		MarginFloor:         10,
		MarginPadding:       5,
		TickLength:          5,
		BorderWidth:         1,
		TitlePadding:        4,
		LabelSize:           12,
		TitleSize:           14,
		HistogramPickScale:  1000,
		PickLineWidthFactor: 5,
		HighlightWidth:      3,
		Foreground:          color.NRGBA{A: 0xff},
		Highlight:           color.NRGBA{R: 0xff, G: 0xc4, A: 0xff},
	}
}
