package model

import (
	"image/color"
	"sync"

	"git.sr.ht/~whereswaldon/brainchart/internal/mathx"
	"git.sr.ht/~whereswaldon/brainchart/primitive"
)

// PaletteMapping controls which parts of a histogram are drawn and in which
// colors.
type PaletteMapping struct {
	ShowBars      bool
	ShowEnvelope  bool
	ShowThreshold bool
	// Buckets whose range lies within [ThresholdLow, ThresholdHigh] are
	// drawn in ThresholdColor when ShowThreshold is set.
	ThresholdLow, ThresholdHigh float64

	BarColor       color.NRGBA
	EnvelopeColor  color.NRGBA
	ThresholdColor color.NRGBA
}

// DefaultPaletteMapping shows bars and envelope.
func DefaultPaletteMapping() PaletteMapping {
	return PaletteMapping{
		ShowBars:       true,
		ShowEnvelope:   true,
		BarColor:       color.NRGBA{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff},
		EnvelopeColor:  color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff},
		ThresholdColor: color.NRGBA{R: 0xd9, G: 0x5f, B: 0x0e, A: 0xff},
	}
}

// Buckets is the histogram of one map: len(Counts) equal width buckets
// spanning [Min, Max].
type Buckets struct {
	Min, Max float64
	Counts   []float64
}

// Width returns the width of one bucket.
func (b Buckets) Width() float64 {
	if len(b.Counts) == 0 {
		return 0
	}
	return (b.Max - b.Min) / float64(len(b.Counts))
}

// Range returns the data range of bucket i.
func (b Buckets) Range(i int) (lo, hi float64) {
	w := b.Width()
	return b.Min + float64(i)*w, b.Min + float64(i+1)*w
}

// HistogramPrimitives are the cached draw batches of one map.
type HistogramPrimitives struct {
	Bars      *primitive.Primitive
	Envelope  *primitive.Primitive
	Threshold *primitive.Primitive
}

// HistogramChart holds the bucket counts of every map of a volume file.
type HistogramChart struct {
	lock    sync.RWMutex
	name    string
	maps    map[int]Buckets
	palette PaletteMapping
	cache   map[int]HistogramPrimitives
}

func NewHistogramChart(name string) *HistogramChart {
	return &HistogramChart{
		name:    name,
		maps:    make(map[int]Buckets),
		palette: DefaultPaletteMapping(),
		cache:   make(map[int]HistogramPrimitives),
	}
}

func (h *HistogramChart) Name() string {
	return h.name
}

// SetBuckets replaces the histogram of mapIndex.
func (h *HistogramChart) SetBuckets(mapIndex int, b Buckets) {
	h.lock.Lock()
	defer h.lock.Unlock()
	b.Counts = append([]float64(nil), b.Counts...)
	h.maps[mapIndex] = b
	delete(h.cache, mapIndex)
}

// Buckets returns the histogram of mapIndex.
func (h *HistogramChart) Buckets(mapIndex int) (Buckets, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	b, ok := h.maps[mapIndex]
	return b, ok
}

// MapCount returns one more than the highest map index with data.
func (h *HistogramChart) MapCount() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	n := 0
	for i := range h.maps {
		n = max(n, i+1)
	}
	return n
}

func (h *HistogramChart) Palette() PaletteMapping {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return h.palette
}

// SetPalette replaces the palette mapping and drops every cached primitive.
func (h *HistogramChart) SetPalette(p PaletteMapping) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.palette = p
	clear(h.cache)
}

// Bounds returns the data extent of mapIndex. Y always starts at zero.
func (h *HistogramChart) Bounds(mapIndex int) (x, y mathx.Extent) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	b, ok := h.maps[mapIndex]
	if !ok || len(b.Counts) == 0 {
		return x, y
	}
	x.Include(b.Min)
	x.Include(b.Max)
	y.Include(0)
	for _, c := range b.Counts {
		y.Include(c)
	}
	return x, y
}

// Primitives returns the draw batches of mapIndex, building them on first
// use after a change.
func (h *HistogramChart) Primitives(mapIndex int) HistogramPrimitives {
	h.lock.Lock()
	defer h.lock.Unlock()
	if p, ok := h.cache[mapIndex]; ok {
		return p
	}
	b, ok := h.maps[mapIndex]
	if !ok {
		return HistogramPrimitives{}
	}
	p := buildHistogram(b, h.palette)
	h.cache[mapIndex] = p
	return p
}

func buildHistogram(b Buckets, pal PaletteMapping) HistogramPrimitives {
	p := HistogramPrimitives{
		Bars:      primitive.New(primitive.Quads, 0),
		Envelope:  primitive.New(primitive.LineStrip, 1),
		Threshold: primitive.New(primitive.Quads, 0),
	}
	if len(b.Counts) == 0 {
		return p
	}
	p.Envelope.AddStripPoint(0, b.Min, 0, pal.EnvelopeColor)
	for i, count := range b.Counts {
		lo, hi := b.Range(i)
		p.Bars.AddQuad(i, lo, 0, hi, count, pal.BarColor)
		p.Envelope.AddStripPoint(i, lo, count, pal.EnvelopeColor)
		p.Envelope.AddStripPoint(i, hi, count, pal.EnvelopeColor)
		if lo >= pal.ThresholdLow && hi <= pal.ThresholdHigh {
			p.Threshold.AddQuad(i, lo, 0, hi, count, pal.ThresholdColor)
		}
	}
	p.Envelope.AddStripPoint(len(b.Counts)-1, b.Max, 0, pal.EnvelopeColor)
	return p
}
