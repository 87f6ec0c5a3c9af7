package model

import (
	"image/color"
	"slices"
	"sync"

	"git.sr.ht/~whereswaldon/brainchart/internal/mathx"
	"git.sr.ht/~whereswaldon/brainchart/primitive"
)

// Line is one loaded data line: points ordered by X with unique X values.
type Line struct {
	Name string
	xs   []float64
	ys   []float64
	x, y mathx.Extent
}

func NewLine(name string) *Line {
	return &Line{Name: name}
}

// Insert adds the point (x, y) to the line. In the event that the line
// already contains a point at x, nothing is added and the method returns
// false. Otherwise, the method returns true.
func (l *Line) Insert(x, y float64) (inserted bool) {
	if !mathx.Finite(x, y) {
		return false
	}
	index, found := slices.BinarySearch(l.xs, x)
	if found {
		return false
	}
	l.xs = slices.Insert(l.xs, index, x)
	l.ys = slices.Insert(l.ys, index, y)
	l.x.Include(x)
	l.y.Include(y)
	return true
}

func (l *Line) Len() int {
	return len(l.xs)
}

// Point returns the i'th point in X order.
func (l *Line) Point(i int) (x, y float64) {
	return l.xs[i], l.ys[i]
}

// Bounds returns the extent of the line's points.
func (l *Line) Bounds() (x, y mathx.Extent) {
	return l.x, l.y
}

// LineEntry is one element of a chart's history.
type LineEntry struct {
	// Serial increases with every line pushed into the chart.
	Serial    int
	Line      *Line
	Color     color.NRGBA
	Primitive *primitive.Primitive
}

// LineSeriesChart keeps a bounded history of loaded lines. Pushing beyond
// the capacity discards the oldest entry.
type LineSeriesChart struct {
	lock      sync.RWMutex
	name      string
	capacity  int
	lineWidth float64
	entries   []LineEntry
	serial    int
}

// DefaultLineHistory is the capacity used when NewLineSeriesChart is given
// a non-positive one.
const DefaultLineHistory = 5

func NewLineSeriesChart(name string, capacity int) *LineSeriesChart {
	if capacity <= 0 {
		capacity = DefaultLineHistory
	}
	return &LineSeriesChart{name: name, capacity: capacity, lineWidth: 1}
}

func (c *LineSeriesChart) Name() string {
	return c.name
}

// Push appends l to the history. l must not be modified afterwards.
func (c *LineSeriesChart) Push(l *Line) {
	c.lock.Lock()
	defer c.lock.Unlock()
	e := LineEntry{
		Serial: c.serial,
		Line:   l,
		Color:  SeriesColor(c.serial),
	}
	c.serial++
	e.Primitive = buildLine(l, e.Color, c.lineWidth)
	c.entries = append(c.entries, e)
	if over := len(c.entries) - c.capacity; over > 0 {
		c.entries = slices.Delete(c.entries, 0, over)
	}
}

// SetLineWidth changes the width of every entry and rebuilds the cached
// primitives.
func (c *LineSeriesChart) SetLineWidth(w float64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.lineWidth = w
	for i := range c.entries {
		e := &c.entries[i]
		e.Primitive = buildLine(e.Line, e.Color, w)
	}
}

// Clear drops the whole history.
func (c *LineSeriesChart) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.entries = nil
}

func (c *LineSeriesChart) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return len(c.entries)
}

// Entries returns a snapshot of the history, oldest first.
func (c *LineSeriesChart) Entries() []LineEntry {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return slices.Clone(c.entries)
}

// Entry returns the entry with the given serial.
func (c *LineSeriesChart) Entry(serial int) (LineEntry, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	for _, e := range c.entries {
		if e.Serial == serial {
			return e, true
		}
	}
	return LineEntry{}, false
}

// Bounds returns the union extent of every entry in the history.
func (c *LineSeriesChart) Bounds() (x, y mathx.Extent) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	for _, e := range c.entries {
		ex, ey := e.Line.Bounds()
		x.Union(ex)
		y.Union(ey)
	}
	return x, y
}

func buildLine(l *Line, c color.NRGBA, width float64) *primitive.Primitive {
	p := primitive.New(primitive.LineStrip, width)
	for i := range l.xs {
		p.AddStripPoint(i, l.xs[i], l.ys[i], c)
	}
	return p
}
