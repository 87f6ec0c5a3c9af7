// Package scale computes the tick layout of a single chart axis.
//
// A scale maps a data interval onto a pixel length and decides where tick
// marks go and how they are labeled. It has no rendering dependency; callers
// measure and draw the labels themselves.
package scale

import (
	"math"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/brainchart/internal/mathx"
)

// RangeMode selects how the displayed range is derived from the data.
type RangeMode uint8

const (
	// RangeAuto expands the data range outward to multiples of a nice step.
	RangeAuto RangeMode = iota
	// RangeData uses the exact data range.
	RangeData
	// RangeUser uses the user's minimum and maximum and ignores the data.
	RangeUser
)

func (m RangeMode) String() string {
	switch m {
	case RangeAuto:
		return "auto"
	case RangeData:
		return "data"
	case RangeUser:
		return "user"
	default:
		return "unknown"
	}
}

// SubdivisionMode selects how many intervals an axis is divided into.
type SubdivisionMode uint8

const (
	// SubdivisionsAuto derives the count from the axis length and TickSpacing.
	SubdivisionsAuto SubdivisionMode = iota
	// SubdivisionsUser uses Config.Subdivisions verbatim.
	SubdivisionsUser
)

func (m SubdivisionMode) String() string {
	switch m {
	case SubdivisionsAuto:
		return "auto"
	case SubdivisionsUser:
		return "user"
	default:
		return "unknown"
	}
}

// Config is the scaling configuration of one axis.
type Config struct {
	RangeMode        RangeMode
	UserMin, UserMax float64

	SubdivisionMode SubdivisionMode
	Subdivisions    int
	// TickSpacing is the preferred distance in pixels between ticks when
	// subdivisions are automatic.
	TickSpacing float64

	// Decimals is the number of digits after the decimal point in labels.
	// A negative value derives it from the step size.
	Decimals  int
	ShowTicks bool
}

// DefaultConfig returns the configuration new axes start with.
func DefaultConfig() Config {
	return Config{
		RangeMode:       RangeAuto,
		SubdivisionMode: SubdivisionsAuto,
		Subdivisions:    2,
		TickSpacing:     50,
		Decimals:        -1,
		ShowTicks:       true,
	}
}

// Result is the computed layout of one axis.
type Result struct {
	// Min and Max are the resolved range, which may differ from the data.
	Min, Max float64
	// Values holds the data value at each tick.
	Values []float64
	// Offsets holds pixel offsets from the axis origin, one per tick,
	// increasing. The first is 0 and the last is the axis length.
	Offsets []float64
	// Labels holds the text for each tick.
	Labels []string
	Valid  bool
}

// ShowTick reports whether a tick mark is drawn at index i. The endpoints
// coincide with the chart frame and only get labels.
func (r Result) ShowTick(i int) bool {
	return i > 0 && i < len(r.Offsets)-1
}

// HasTickMarks reports whether any tick mark will be drawn.
func (r Result) HasTickMarks() bool {
	return r.Valid && len(r.Offsets) > 2
}

// Compute lays out an axis that covers [dataMin, dataMax] over length pixels.
// The result is invalid when the effective range has no spread or the length
// is not positive.
func Compute(dataMin, dataMax, length float64, cfg Config) Result {
	lo, hi := dataMin, dataMax
	if cfg.RangeMode == RangeUser {
		lo, hi = cfg.UserMin, cfg.UserMax
	}
	if !mathx.Finite(lo, hi, length) || lo >= hi || length <= 0 {
		return Result{Min: lo, Max: hi}
	}
	return compute(lo, hi, length, subdivisions(cfg, length), cfg)
}

// Candidates returns every layout Compute can produce for an axis of at most
// length pixels. Automatic subdivision only depends on the length through
// the tick count, so this is one result per count from 1 up to the count at
// length. Offsets are scaled to length.
func Candidates(dataMin, dataMax, length float64, cfg Config) []Result {
	lo, hi := dataMin, dataMax
	if cfg.RangeMode == RangeUser {
		lo, hi = cfg.UserMin, cfg.UserMax
	}
	if !mathx.Finite(lo, hi, length) || lo >= hi || length <= 0 {
		return nil
	}
	if cfg.SubdivisionMode == SubdivisionsUser {
		return []Result{compute(lo, hi, length, subdivisions(cfg, length), cfg)}
	}
	n := subdivisions(cfg, length)
	out := make([]Result, 0, n)
	for k := 1; k <= n; k++ {
		out = append(out, compute(lo, hi, length, k, cfg))
	}
	return out
}

// compute lays out [lo, hi] with n subdivisions. The range is already
// resolved and valid.
func compute(lo, hi, length float64, n int, cfg Config) Result {
	var values []float64
	step := (hi - lo) / float64(n)
	switch cfg.RangeMode {
	case RangeAuto:
		step = NiceStep(step)
		const eps = 1e-9
		lo = math.Floor(lo/step+eps) * step
		hi = math.Ceil(hi/step-eps) * step
		count := int(math.Round((hi - lo) / step))
		values = make([]float64, 0, count+1)
		for i := 0; i <= count; i++ {
			values = append(values, lo+float64(i)*step)
		}
		// Guard the endpoint against accumulated rounding.
		values[len(values)-1] = hi
	default:
		values = make([]float64, 0, n+1)
		for i := 0; i <= n; i++ {
			values = append(values, lo+float64(i)*step)
		}
		values[len(values)-1] = hi
	}

	decimals := cfg.Decimals
	if decimals < 0 {
		decimals = Decimals(step)
	}
	r := Result{
		Min:     lo,
		Max:     hi,
		Values:  values,
		Offsets: make([]float64, len(values)),
		Labels:  make([]string, len(values)),
		Valid:   true,
	}
	span := hi - lo
	for i, v := range values {
		r.Offsets[i] = (v - lo) / span * length
		r.Labels[i] = Format(v, step, decimals)
	}
	return r
}

func subdivisions(cfg Config, length float64) int {
	if cfg.SubdivisionMode == SubdivisionsUser {
		return max(1, cfg.Subdivisions)
	}
	spacing := cfg.TickSpacing
	if spacing <= 0 {
		spacing = DefaultConfig().TickSpacing
	}
	return max(1, int(length/spacing))
}

// NiceStep rounds raw up to the nearest 1, 2, 2.5 or 5 times a power of ten.
func NiceStep(raw float64) float64 {
	if raw <= 0 || !mathx.Finite(raw) {
		return 1
	}
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base
	for _, nice := range []float64{1, 2, 2.5, 5} {
		if frac <= nice*(1+1e-9) {
			return nice * base
		}
	}
	return 10 * base
}

// Decimals returns the number of fractional digits needed to print
// multiples of step.
func Decimals(step float64) int {
	if step <= 0 || !mathx.Finite(step) {
		return 0
	}
	d0 := max(0, int(math.Ceil(-math.Log10(step)-1e-9)))
	for d := d0; d <= d0+3; d++ {
		scaled := step * math.Pow(10, float64(d))
		if math.Abs(scaled-math.Round(scaled)) < 1e-6*math.Max(1, scaled) {
			return d
		}
	}
	// Steps that never terminate get one extra digit.
	return d0 + 1
}

// Format renders a tick value. Values that round to zero never carry a
// minus sign.
func Format(v, step float64, decimals int) string {
	if math.Abs(v) < math.Abs(step)*1e-9 {
		v = 0
	}
	if a := math.Abs(v); a >= 1e7 || (a != 0 && decimals > 6) {
		return strconv.FormatFloat(v, 'e', 2, 64)
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		s = s[1:]
	}
	return s
}
