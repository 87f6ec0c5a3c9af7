package chart

import (
	"image/color"
	"math"

	"git.sr.ht/~whereswaldon/brainchart/model"
)

// TextStyle describes how a string is rendered.
type TextStyle struct {
	// Size is the font size in viewport pixels.
	Size  float64
	Color color.NRGBA
}

// TextMetrics measures rendered text. Width and height are of the unrotated
// string in viewport pixels.
type TextMetrics interface {
	Measure(text string, style TextStyle) (width, height float64)
}

// TextDrawer is implemented by metrics providers that can also draw tick
// labels. The renderer hands it every label of the visual pass.
type TextDrawer interface {
	DrawText(l TextLabel)
}

// Quarter is a counter clockwise quarter turn, the rotation of vertical axis
// titles.
const Quarter = math.Pi / 2

// TextLabel is a string placed in window pixels.
//
// The anchor selects the point of the label's box that lands on (X, Y):
// (0, 0) is the bottom left corner and (1, 1) the top right, measured in the
// label's own rotated frame.
type TextLabel struct {
	Text             string
	X, Y             float64
	AnchorX, AnchorY float64
	// Rotation is counter clockwise, in radians.
	Rotation float64
	Style    TextStyle
}

// TitleLabel is an axis title positioned by the renderer. Titles are drawn by
// a separate annotation pass after the chart.
type TitleLabel struct {
	TextLabel
	Axis model.AxisLocation
}
