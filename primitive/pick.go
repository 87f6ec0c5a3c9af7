package primitive

import "math"

// Pick returns the identifier of the item under the window point (x, y) when
// p is drawn with state s, or -1. Items drawn later win over earlier ones and
// points outside the projection's viewport never hit.
//
// Quads are hit when the point is inside the projected rectangle. Line items
// are hit within half the line width of the segment. A hit on a line strip
// segment reports the nearer of its two endpoints.
func (p *Primitive) Pick(s State, x, y float64) int {
	if p.Empty() || !s.Projection.Valid() || !s.Projection.Viewport.Contains(x, y) {
		return -1
	}
	hit := -1
	switch p.Kind {
	case Quads:
		for i := 0; i < p.ItemCount(); i++ {
			minX, minY := math.Inf(1), math.Inf(1)
			maxX, maxY := math.Inf(-1), math.Inf(-1)
			for _, v := range p.Vertices[i*4 : i*4+4] {
				wx, wy := s.Project(v)
				minX, maxX = min(minX, wx), max(maxX, wx)
				minY, maxY = min(minY, wy), max(maxY, wy)
			}
			if x >= minX && x <= maxX && y >= minY && y <= maxY {
				hit = p.ID(i)
			}
		}
	case Lines:
		half := s.Width(p) / 2
		for i := 0; i < p.ItemCount(); i++ {
			ax, ay := s.Project(p.Vertices[2*i])
			bx, by := s.Project(p.Vertices[2*i+1])
			if segmentDistance(x, y, ax, ay, bx, by) <= half {
				hit = p.ID(i)
			}
		}
	case LineStrip:
		half := s.Width(p) / 2
		for i := 0; i+1 < len(p.Vertices); i++ {
			ax, ay := s.Project(p.Vertices[i])
			bx, by := s.Project(p.Vertices[i+1])
			if segmentDistance(x, y, ax, ay, bx, by) > half {
				continue
			}
			if math.Hypot(x-ax, y-ay) <= math.Hypot(x-bx, y-by) {
				hit = p.ID(i)
			} else {
				hit = p.ID(i + 1)
			}
		}
	}
	return hit
}

// Identify runs Pick and pairs a hit with the depth of s. A miss returns -1.
func Identify(p *Primitive, s State, x, y float64) (index int, depth float64) {
	if i := p.Pick(s, x, y); i >= 0 {
		return i, s.Depth
	}
	return -1, 0
}

// segmentDistance returns the distance from (px, py) to the segment a-b.
func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / l2
	t = max(0, min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
