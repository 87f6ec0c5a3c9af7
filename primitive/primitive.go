// Package primitive defines the vertex batches the chart renderer submits and
// the Drawer interface that rasterizes them.
//
// A Primitive is built once when its data changes and then drawn every frame
// under a State that supplies the projection, so the same batch can be drawn
// on either vertical axis or inside a zoomed matrix viewport without being
// rebuilt.
package primitive

import (
	"image/color"

	"git.sr.ht/~whereswaldon/brainchart/internal/mathx"
)

// Kind selects how vertices are grouped into items.
type Kind uint8

const (
	// Lines groups vertices in pairs; each pair is one segment and one item.
	Lines Kind = iota
	// LineStrip joins consecutive vertices; every vertex is one item.
	LineStrip
	// Quads groups vertices in fours forming an axis aligned rectangle.
	Quads
)

func (k Kind) String() string {
	switch k {
	case Lines:
		return "lines"
	case LineStrip:
		return "line-strip"
	case Quads:
		return "quads"
	default:
		return "unknown"
	}
}

// perItem reports the number of vertices making up one item.
func (k Kind) perItem() int {
	switch k {
	case Lines:
		return 2
	case Quads:
		return 4
	default:
		return 1
	}
}

// Vertex is a point in model space.
type Vertex struct {
	X, Y float64
}

// AltColorID names an alternative color set of a primitive.
type AltColorID int

// Primitive is a batch of vertices with per vertex colors and per item
// identifiers.
type Primitive struct {
	Kind     Kind
	Vertices []Vertex
	// Colors holds one color per vertex.
	Colors []color.NRGBA
	// IDs holds one identifier per item. Identification reports these
	// rather than the item's position in the batch.
	IDs []int
	// LineWidth is the width of Lines and LineStrip primitives in pixels.
	LineWidth float64

	alternates map[AltColorID][]color.NRGBA
}

// New returns an empty primitive of the given kind.
func New(kind Kind, lineWidth float64) *Primitive {
	return &Primitive{Kind: kind, LineWidth: lineWidth}
}

func (p *Primitive) add(c color.NRGBA, vs ...Vertex) {
	p.Vertices = append(p.Vertices, vs...)
	for range vs {
		p.Colors = append(p.Colors, c)
	}
}

// AddQuad appends the rectangle spanning (x0, y0) and (x1, y1). It panics if
// the primitive is not a Quads primitive.
func (p *Primitive) AddQuad(id int, x0, y0, x1, y1 float64, c color.NRGBA) {
	if p.Kind != Quads {
		panic("primitive: AddQuad on " + p.Kind.String())
	}
	p.add(c, Vertex{x0, y0}, Vertex{x1, y0}, Vertex{x1, y1}, Vertex{x0, y1})
	p.IDs = append(p.IDs, id)
}

// AddSegment appends a line segment. It panics if the primitive is not a
// Lines primitive.
func (p *Primitive) AddSegment(id int, x0, y0, x1, y1 float64, c color.NRGBA) {
	if p.Kind != Lines {
		panic("primitive: AddSegment on " + p.Kind.String())
	}
	p.add(c, Vertex{x0, y0}, Vertex{x1, y1})
	p.IDs = append(p.IDs, id)
}

// AddStripPoint appends the next point of a line strip. It panics if the
// primitive is not a LineStrip primitive.
func (p *Primitive) AddStripPoint(id int, x, y float64, c color.NRGBA) {
	if p.Kind != LineStrip {
		panic("primitive: AddStripPoint on " + p.Kind.String())
	}
	p.add(c, Vertex{x, y})
	p.IDs = append(p.IDs, id)
}

// SetAlternativeColor registers a color set under id in which every vertex
// has color c.
func (p *Primitive) SetAlternativeColor(id AltColorID, c color.NRGBA) {
	cs := make([]color.NRGBA, len(p.Vertices))
	for i := range cs {
		cs[i] = c
	}
	if p.alternates == nil {
		p.alternates = make(map[AltColorID][]color.NRGBA)
	}
	p.alternates[id] = cs
}

// AlternativeColors returns the per vertex colors registered under id.
func (p *Primitive) AlternativeColors(id AltColorID) ([]color.NRGBA, bool) {
	cs, ok := p.alternates[id]
	if !ok || len(cs) != len(p.Vertices) {
		return nil, false
	}
	return cs, true
}

// ItemCount returns the number of complete items in the primitive.
func (p *Primitive) ItemCount() int {
	if p == nil {
		return 0
	}
	return len(p.Vertices) / p.Kind.perItem()
}

// Empty reports whether there is nothing to draw.
func (p *Primitive) Empty() bool {
	if p == nil {
		return true
	}
	if p.Kind == LineStrip {
		return len(p.Vertices) < 2
	}
	return p.ItemCount() == 0
}

// ID returns the identifier of item i.
func (p *Primitive) ID(i int) int {
	if i < len(p.IDs) {
		return p.IDs[i]
	}
	return i
}

// Bounds returns the model space extent of all vertices.
func (p *Primitive) Bounds() (x, y mathx.Extent) {
	if p == nil {
		return x, y
	}
	for _, v := range p.Vertices {
		x.Include(v.X)
		y.Include(v.Y)
	}
	return x, y
}
