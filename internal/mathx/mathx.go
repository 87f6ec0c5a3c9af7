// Package mathx holds small numeric helpers shared by the chart packages.
package mathx

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func Floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Finite reports whether every argument is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Extent tracks a running [Min, Max] over a sequence of values.
type Extent struct {
	Min, Max float64
	Set      bool
}

// Include widens the extent to contain v.
func (e *Extent) Include(v float64) {
	if !e.Set {
		e.Min, e.Max, e.Set = v, v, true
		return
	}
	e.Min = min(e.Min, v)
	e.Max = max(e.Max, v)
}

// Union widens the extent to contain o.
func (e *Extent) Union(o Extent) {
	if !o.Set {
		return
	}
	e.Include(o.Min)
	e.Include(o.Max)
}

// Valid reports whether the extent has a positive spread.
func (e Extent) Valid() bool {
	return e.Set && e.Min < e.Max
}
