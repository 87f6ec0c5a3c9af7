package selection

import (
	"testing"

	"git.sr.ht/~whereswaldon/brainchart/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkClosestWins(t *testing.T) {
	var m MatrixSink
	a := Origin{Overlay: 0, Source: "A"}
	b := Origin{Overlay: 1, Source: "B"}
	c := Origin{Overlay: 2, Source: "C"}

	assert.True(t, m.TryRecord(a, 5, 4, 0.5))
	assert.True(t, m.TryRecord(b, 6, 4, 0.3))
	assert.False(t, m.TryRecord(c, 7, 4, 0.9))
	require.True(t, m.Valid())
	assert.Equal(t, "B", m.Source)
	assert.Equal(t, 0.3, m.Depth())
	assert.Equal(t, 1, m.Row)
	assert.Equal(t, 2, m.Column)
}

func TestSinkTieKeepsFirst(t *testing.T) {
	var h HistogramSink
	assert.True(t, h.TryRecord(Origin{Source: "first"}, 0, 3, 0.5))
	assert.False(t, h.TryRecord(Origin{Source: "second"}, 0, 4, 0.5))
	assert.Equal(t, "first", h.Source)
	assert.Equal(t, 3, h.Bucket)
}

func TestSinkIgnoresMisses(t *testing.T) {
	var l LineSeriesSink
	assert.False(t, l.TryRecord(Origin{Source: "a"}, 0, -1, 0.1))
	assert.False(t, l.Valid())
	assert.True(t, l.TryRecord(Origin{Source: "a"}, 2, 9, 0.8))
	assert.False(t, l.TryRecord(Origin{Source: "b"}, 3, -1, 0.1))
	assert.Equal(t, 9, l.Point)
	assert.Equal(t, 2, l.Entry)
}

func TestCellRowColumnRoundTrip(t *testing.T) {
	for _, cols := range []int{1, 3, 7} {
		for row := 0; row < 5; row++ {
			for col := 0; col < cols; col++ {
				r, c := CellRowColumn(row*cols+col, cols)
				assert.Equal(t, row, r)
				assert.Equal(t, col, c)
			}
		}
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	assert.True(t, m.AnyEnabled())
	m.Enable(model.Histogram, false)
	m.Enable(model.LineSeries, false)
	assert.False(t, m.Enabled(model.Histogram))
	assert.True(t, m.AnyEnabled())
	m.Enable(model.Matrix, false)
	assert.False(t, m.AnyEnabled())

	m.Matrix.TryRecord(Origin{Source: "m"}, 4, 2, 0.5)
	desc, ok := m.Hit(model.Matrix)
	assert.True(t, ok)
	assert.Equal(t, "m row 2 column 0", desc)
	m.Reset()
	_, ok = m.Hit(model.Matrix)
	assert.False(t, ok)

	var zero Manager
	assert.False(t, zero.AnyEnabled())
}
