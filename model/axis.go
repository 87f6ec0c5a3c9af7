package model

import "git.sr.ht/~whereswaldon/brainchart/scale"

// Axis describes one side of a chart. The chart decides whether the side is
// in use (enabled-by-chart); the user decides whether it is displayed.
type Axis struct {
	Location  AxisLocation
	Displayed bool
	Scale     scale.Config
	// Title overrides the title derived from the chart's sources.
	Title string
	Units AxisUnits

	enabledByChart bool
	autoTitle      string

	rangeMin, rangeMax float64
	rangeSet           bool
}

// NewAxis returns a displayed axis with the default scale configuration.
func NewAxis(loc AxisLocation) *Axis {
	return &Axis{
		Location:  loc,
		Displayed: true,
		Scale:     scale.DefaultConfig(),
	}
}

// EnabledByChart reports whether the chart has data using this axis.
func (a *Axis) EnabledByChart() bool {
	return a != nil && a.enabledByChart
}

// Visible reports whether the axis takes part in layout.
func (a *Axis) Visible() bool {
	return a != nil && a.enabledByChart && a.Displayed
}

// DisplayTitle returns the title to draw, which may be empty.
func (a *Axis) DisplayTitle() string {
	if a.Title != "" {
		return a.Title
	}
	return a.autoTitle
}

// SetResolvedRange records the range the axis was last drawn with.
func (a *Axis) SetResolvedRange(min, max float64) {
	a.rangeMin, a.rangeMax, a.rangeSet = min, max, true
}

// ResolvedRange returns the range recorded by SetResolvedRange.
func (a *Axis) ResolvedRange() (min, max float64, ok bool) {
	return a.rangeMin, a.rangeMax, a.rangeSet
}

// LockRange switches the axis to a user range of [min, max].
func (a *Axis) LockRange(min, max float64) {
	a.Scale.RangeMode = scale.RangeUser
	a.Scale.UserMin, a.Scale.UserMax = min, max
}

// Locked reports whether the axis uses a user range.
func (a *Axis) Locked() bool {
	return a.Scale.RangeMode == scale.RangeUser
}
