package model

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// SeriesColor returns the color of the i'th line series entry. Hues step by
// the golden angle so neighbouring entries stay distinguishable.
func SeriesColor(i int) color.NRGBA {
	h := math.Mod(float64(i+1)*math.Phi*360, 360)
	return nrgba(colorful.Hcl(h, 0.6, 0.55).Clamped())
}

func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Ramp maps a normalized value in [0, 1] onto a color blended in Lab space.
type Ramp struct {
	Low, Mid, High colorful.Color
}

// DefaultRamp runs from blue through white to red.
func DefaultRamp() Ramp {
	return Ramp{
		Low:  colorful.Color{R: 0.13, G: 0.31, B: 0.68},
		Mid:  colorful.Color{R: 0.97, G: 0.97, B: 0.97},
		High: colorful.Color{R: 0.70, G: 0.09, B: 0.17},
	}
}

// RampFromHex builds a ramp from three hex colors such as "#2150ad".
func RampFromHex(low, mid, high string) (Ramp, error) {
	var r Ramp
	var err error
	if r.Low, err = colorful.Hex(low); err != nil {
		return Ramp{}, err
	}
	if r.Mid, err = colorful.Hex(mid); err != nil {
		return Ramp{}, err
	}
	if r.High, err = colorful.Hex(high); err != nil {
		return Ramp{}, err
	}
	return r, nil
}

// At returns the color at t, clamped to [0, 1].
func (r Ramp) At(t float64) color.NRGBA {
	if math.IsNaN(t) {
		return color.NRGBA{}
	}
	t = max(0, min(1, t))
	if t < 0.5 {
		return nrgba(r.Low.BlendLab(r.Mid, t*2).Clamped())
	}
	return nrgba(r.Mid.BlendLab(r.High, (t-0.5)*2).Clamped())
}

// ParseColor parses a hex color into an opaque NRGBA.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	return nrgba(c), nil
}
