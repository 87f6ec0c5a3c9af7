package raster

import (
	"image"
	"math"

	"git.sr.ht/~whereswaldon/brainchart/chart"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

func parseFont() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
}

// face returns the cached face for size, creating it on first use.
func (c *Canvas) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		chart.Logger().Warn("could not create font face", "size", size, "error", err)
		return nil
	}
	c.faces[size] = f
	return f
}

// Measure implements chart.TextMetrics.
func (c *Canvas) Measure(text string, style chart.TextStyle) (float64, float64) {
	f := c.face(style.Size)
	if f == nil || text == "" {
		return 0, 0
	}
	m := f.Metrics()
	return fixedFloat(font.MeasureString(f, text)), fixedFloat(m.Ascent + m.Descent)
}

// DrawText implements chart.TextDrawer.
func (c *Canvas) DrawText(l chart.TextLabel) {
	f := c.face(l.Style.Size)
	if f == nil || l.Text == "" {
		return
	}
	m := f.Metrics()
	w, h := fixedFloat(font.MeasureString(f, l.Text)), fixedFloat(m.Ascent+m.Descent)
	tmp := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w)), int(math.Ceil(h))))
	d := font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(l.Style.Color),
		Face: f,
		Dot:  fixed.Point26_6{Y: m.Ascent},
	}
	d.DrawString(l.Text)

	// Map the label image onto the canvas: anchor at (X, Y), rotated
	// counter-clockwise, with both y axes flipped.
	sin, cos := math.Sincos(l.Rotation)
	ax, ay := l.AnchorX*w, l.AnchorY*h
	ih := float64(c.img.Bounds().Dy())
	aff := f64.Aff3{
		cos, sin, l.X - cos*ax - sin*(h-ay),
		-sin, cos, ih - l.Y + sin*ax - cos*(h-ay),
	}
	draw.ApproxBiLinear.Transform(c.img, aff, tmp, tmp.Bounds(), draw.Over, nil)
}

// DrawTitles draws the axis titles returned by a visual chart pass.
func (c *Canvas) DrawTitles(titles []chart.TitleLabel) {
	for _, t := range titles {
		c.DrawText(t.TextLabel)
	}
}

func fixedFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
