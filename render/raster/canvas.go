// Package raster draws chart primitives into an in-memory RGBA image. It
// backs headless rendering such as snapshot export and tests that need real
// pixels.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"git.sr.ht/~whereswaldon/brainchart/primitive"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/vector"
)

// Canvas is a primitive.Drawer and chart text provider over an image.RGBA.
// Window coordinates have their origin at the bottom left of the image.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img   *image.RGBA
	state primitive.State
	clip  image.Rectangle
	ras   vector.Rasterizer
	font  *opentype.Font
	faces map[float64]font.Face
}

// New returns a transparent w×h canvas.
func New(w, h int) (*Canvas, error) {
	f, err := parseFont()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Canvas{
		img:   img,
		clip:  img.Bounds(),
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear fills the whole image with col.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// EncodePNG writes the image as a PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

func (c *Canvas) SetState(s primitive.State) {
	c.state = s
	vp := s.Projection.Viewport
	h := float64(c.img.Bounds().Dy())
	r := image.Rect(
		int(math.Floor(vp.X)), int(math.Floor(h-vp.Y-vp.H)),
		int(math.Ceil(vp.X+vp.W)), int(math.Ceil(h-vp.Y)),
	)
	c.clip = r.Intersect(c.img.Bounds())
}

func (c *Canvas) Draw(p *primitive.Primitive) {
	c.draw(p, p.Colors)
}

// DrawWithSelection hit-tests p without drawing it.
func (c *Canvas) DrawWithSelection(p *primitive.Primitive, mx, my float64) (int, float64) {
	return primitive.Identify(p, c.state, mx, my)
}

func (c *Canvas) DrawWithAlternativeColor(p *primitive.Primitive, id primitive.AltColorID) {
	colors, ok := p.AlternativeColors(id)
	if !ok {
		return
	}
	c.draw(p, colors)
}

type point struct{ x, y float32 }

// project maps a model vertex to image pixels.
func (c *Canvas) project(v primitive.Vertex) point {
	x, y := c.state.Project(v)
	return point{float32(x), float32(float64(c.img.Bounds().Dy()) - y)}
}

func (c *Canvas) draw(p *primitive.Primitive, colors []color.NRGBA) {
	if p.Empty() || !c.state.Projection.Valid() || c.clip.Empty() {
		return
	}
	width := float32(c.state.Width(p))
	switch p.Kind {
	case primitive.Quads:
		for i := 0; i+3 < len(p.Vertices); i += 4 {
			q := [4]point{}
			for k := range q {
				q[k] = c.project(p.Vertices[i+k])
			}
			col := colors[i]
			if c.state.Mode == primitive.Outline {
				for k := range q {
					c.stroke(q[k], q[(k+1)%4], width, col)
				}
				continue
			}
			c.fill(q[:], col)
		}
	case primitive.Lines:
		for i := 0; i+1 < len(p.Vertices); i += 2 {
			c.stroke(c.project(p.Vertices[i]), c.project(p.Vertices[i+1]), width, colors[i])
		}
	case primitive.LineStrip:
		prev := c.project(p.Vertices[0])
		for i := 1; i < len(p.Vertices); i++ {
			next := c.project(p.Vertices[i])
			c.stroke(prev, next, width, colors[i-1])
			prev = next
		}
	}
}

// stroke fills the rectangle of the given width around a-b, extended by half
// the width at both ends.
func (c *Canvas) stroke(a, b point, width float32, col color.NRGBA) {
	dx, dy := b.x-a.x, b.y-a.y
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	half := width / 2
	ux, uy := dx/l*half, dy/l*half
	nx, ny := -uy, ux
	c.fill([]point{
		{a.x - ux + nx, a.y - uy + ny},
		{b.x + ux + nx, b.y + uy + ny},
		{b.x + ux - nx, b.y + uy - ny},
		{a.x - ux - nx, a.y - uy - ny},
	}, col)
}

// fill rasterizes the closed polygon pts, clipped to the current viewport.
// The rasterizer only covers the polygon's bounding box.
func (c *Canvas) fill(pts []point, col color.NRGBA) {
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, p := range pts {
		minX, maxX = min(minX, p.x), max(maxX, p.x)
		minY, maxY = min(minY, p.y), max(maxY, p.y)
	}
	r := image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	).Intersect(c.clip)
	if r.Empty() {
		return
	}
	dst := c.img.SubImage(r).(*image.RGBA)
	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	c.ras.Reset(r.Dx(), r.Dy())
	c.ras.DrawOp = draw.Over
	c.ras.MoveTo(pts[0].x-ox, pts[0].y-oy)
	for _, p := range pts[1:] {
		c.ras.LineTo(p.x-ox, p.y-oy)
	}
	c.ras.ClosePath()
	c.ras.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
}
