package primitive

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.NRGBA{R: 255, A: 255}

// unitState maps [0,10]x[0,10] onto a 100x100 viewport at (50, 20).
func unitState() State {
	return State{Projection: Ortho(0, 10, 0, 10, Viewport{X: 50, Y: 20, W: 100, H: 100})}
}

func TestProjectionRoundTrip(t *testing.T) {
	p := unitState().Projection
	wx, wy := p.ToWindow(2.5, 7.5)
	assert.InDelta(t, 75, wx, 1e-9)
	assert.InDelta(t, 95, wy, 1e-9)
	x, y := p.ToModel(wx, wy)
	assert.InDelta(t, 2.5, x, 1e-9)
	assert.InDelta(t, 7.5, y, 1e-9)
	assert.False(t, Ortho(1, 1, 0, 1, p.Viewport).Valid())
	assert.False(t, Ortho(0, 1, 0, 1, Viewport{W: 10}).Valid())
}

func TestBuilderKinds(t *testing.T) {
	q := New(Quads, 0)
	q.AddQuad(7, 0, 0, 1, 1, red)
	q.AddQuad(9, 1, 0, 2, 3, red)
	assert.Equal(t, 2, q.ItemCount())
	assert.Len(t, q.Colors, len(q.Vertices))
	assert.Equal(t, 9, q.ID(1))
	x, y := q.Bounds()
	assert.Equal(t, 0.0, x.Min)
	assert.Equal(t, 2.0, x.Max)
	assert.Equal(t, 3.0, y.Max)

	s := New(LineStrip, 1)
	assert.True(t, s.Empty())
	s.AddStripPoint(0, 0, 0, red)
	assert.True(t, s.Empty(), "a single point draws nothing")
	s.AddStripPoint(1, 1, 1, red)
	assert.False(t, s.Empty())

	assert.Panics(t, func() { q.AddSegment(0, 0, 0, 1, 1, red) })
	assert.Panics(t, func() { s.AddQuad(0, 0, 0, 1, 1, red) })

	var nilPrim *Primitive
	assert.True(t, nilPrim.Empty())
	assert.Zero(t, nilPrim.ItemCount())
}

func TestAlternativeColors(t *testing.T) {
	q := New(Quads, 0)
	q.AddQuad(0, 0, 0, 1, 1, red)
	_, ok := q.AlternativeColors(1)
	assert.False(t, ok)
	grid := color.NRGBA{A: 255}
	q.SetAlternativeColor(1, grid)
	cs, ok := q.AlternativeColors(1)
	require.True(t, ok)
	assert.Len(t, cs, 4)
	assert.Equal(t, grid, cs[3])

	// Vertices added after the set was registered invalidate it.
	q.AddQuad(1, 1, 1, 2, 2, red)
	_, ok = q.AlternativeColors(1)
	assert.False(t, ok)
}

func TestPickQuads(t *testing.T) {
	q := New(Quads, 0)
	q.AddQuad(3, 0, 0, 5, 5, red)
	q.AddQuad(4, 2, 2, 8, 8, red)
	s := unitState()

	for _, tc := range []struct {
		name string
		x, y float64
		want int
	}{
		{name: "first only", x: 60, y: 30, want: 3},
		{name: "overlap takes last", x: 90, y: 60, want: 4},
		{name: "second only", x: 120, y: 90, want: 4},
		{name: "outside", x: 145, y: 30, want: -1},
		{name: "outside viewport", x: 0, y: 0, want: -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, q.Pick(s, tc.x, tc.y))
		})
	}
}

func TestPickScaleY(t *testing.T) {
	q := New(Quads, 0)
	q.AddQuad(0, 0, 0, 1, 0.01, red)
	s := unitState()
	// The bar is a tenth of a pixel tall until it is scaled up.
	assert.Equal(t, -1, q.Pick(s, 55, 60))
	s.ScaleY = 1000
	assert.Equal(t, 0, q.Pick(s, 55, 60))
}

func TestPickLines(t *testing.T) {
	l := New(Lines, 2)
	l.AddSegment(11, 0, 5, 10, 5, red)
	s := unitState()
	assert.Equal(t, 11, l.Pick(s, 100, 70.5))
	assert.Equal(t, -1, l.Pick(s, 100, 72.5))
	s.LineWidth = 10
	assert.Equal(t, 11, l.Pick(s, 100, 74))
}

func TestPickLineStripNearestEndpoint(t *testing.T) {
	l := New(LineStrip, 2)
	l.AddStripPoint(100, 0, 0, red)
	l.AddStripPoint(101, 10, 0, red)
	s := unitState()
	assert.Equal(t, 100, l.Pick(s, 60, 20))
	assert.Equal(t, 101, l.Pick(s, 140, 20.5))
	assert.Equal(t, -1, l.Pick(s, 140, 40))
}

func TestIdentify(t *testing.T) {
	q := New(Quads, 0)
	q.AddQuad(5, 0, 0, 10, 10, red)
	s := unitState()
	s.Depth = 0.25
	i, d := Identify(q, s, 100, 70)
	assert.Equal(t, 5, i)
	assert.Equal(t, 0.25, d)
	i, _ = Identify(q, s, 0, 0)
	assert.Equal(t, -1, i)
}
