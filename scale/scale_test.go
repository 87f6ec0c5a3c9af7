package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDegenerate(t *testing.T) {
	for _, tc := range []struct {
		name     string
		min, max float64
		length   float64
		cfg      Config
	}{
		{name: "equal bounds", min: 4, max: 4, length: 100, cfg: DefaultConfig()},
		{name: "inverted bounds", min: 5, max: 1, length: 100, cfg: DefaultConfig()},
		{name: "zero length", min: 0, max: 1, length: 0, cfg: DefaultConfig()},
		{name: "inverted user range", min: 0, max: 10, length: 100, cfg: Config{RangeMode: RangeUser, UserMin: 3, UserMax: 3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := Compute(tc.min, tc.max, tc.length, tc.cfg)
			assert.False(t, r.Valid)
			assert.Empty(t, r.Offsets)
			assert.False(t, r.HasTickMarks())
		})
	}
}

func TestComputeAutoRange(t *testing.T) {
	r := Compute(0.3, 97, 500, DefaultConfig())
	require.True(t, r.Valid)
	assert.Equal(t, 0.0, r.Min)
	assert.Equal(t, 100.0, r.Max)
	require.Len(t, r.Labels, 11)
	assert.Equal(t, "0", r.Labels[0])
	assert.Equal(t, "50", r.Labels[5])
	assert.Equal(t, "100", r.Labels[10])
	assert.Equal(t, 0.0, r.Offsets[0])
	assert.InDelta(t, 500, r.Offsets[10], 1e-9)
}

func TestComputeOffsetsIncrease(t *testing.T) {
	for _, cfg := range []Config{
		DefaultConfig(),
		{RangeMode: RangeData, SubdivisionMode: SubdivisionsUser, Subdivisions: 7, Decimals: -1},
		{RangeMode: RangeUser, UserMin: -3, UserMax: 12.5, SubdivisionMode: SubdivisionsAuto, TickSpacing: 37, Decimals: 2},
	} {
		r := Compute(-1.25, 8.75, 333, cfg)
		require.True(t, r.Valid, "%+v", cfg)
		assert.Len(t, r.Labels, len(r.Offsets))
		for i := 1; i < len(r.Offsets); i++ {
			assert.Greater(t, r.Offsets[i], r.Offsets[i-1], "offset %d with %+v", i, cfg)
		}
		assert.Equal(t, 0.0, r.Offsets[0])
		assert.InDelta(t, 333, r.Offsets[len(r.Offsets)-1], 1e-9)
	}
}

func TestComputeUserRangeOverridesData(t *testing.T) {
	cfg := Config{
		RangeMode:       RangeUser,
		UserMin:         -10,
		UserMax:         10,
		SubdivisionMode: SubdivisionsUser,
		Subdivisions:    4,
		Decimals:        -1,
	}
	r := Compute(0, 1, 200, cfg)
	require.True(t, r.Valid)
	assert.Equal(t, -10.0, r.Min)
	assert.Equal(t, 10.0, r.Max)
	assert.Equal(t, []string{"-10", "-5", "0", "5", "10"}, r.Labels)
}

func TestEndpointTickSuppression(t *testing.T) {
	for _, n := range []int{1, 2, 3, 6, 11} {
		cfg := Config{RangeMode: RangeData, SubdivisionMode: SubdivisionsUser, Subdivisions: n, Decimals: -1}
		r := Compute(0, 1, 100, cfg)
		require.True(t, r.Valid)
		require.GreaterOrEqual(t, len(r.Labels), 2)
		last := len(r.Offsets) - 1
		for i := range r.Offsets {
			shown := r.ShowTick(i)
			if i == 0 || i == last {
				assert.False(t, shown, "endpoint %d of %d must not get a tick mark", i, last)
			} else {
				assert.True(t, shown, "interior index %d of %d must get a tick mark", i, last)
			}
			assert.NotEmpty(t, r.Labels[i], "every index is labeled")
		}
		assert.Equal(t, n > 1, r.HasTickMarks())
	}
}

func TestNiceStep(t *testing.T) {
	for raw, want := range map[float64]float64{
		0.7:   1,
		1:     1,
		1.3:   2,
		2.2:   2.5,
		3:     5,
		7:     10,
		0.013: 0.02,
		420:   500,
	} {
		assert.InDelta(t, want, NiceStep(raw), want*1e-9, "raw %v", raw)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2.5", Format(2.5, 2.5, Decimals(2.5)))
	assert.Equal(t, "0.25", Format(0.25, 0.25, Decimals(0.25)))
	assert.Equal(t, "0.0", Format(-1e-17, 0.1, 1))
	assert.Equal(t, "0.0", Format(-0.01, 0.1, 1))
	assert.Equal(t, "1.20e+07", Format(12e6, 1e6, 0))
	assert.Equal(t, 2, Decimals(1.0/3))
}

func TestCandidatesCoverShorterAxes(t *testing.T) {
	for _, tc := range []struct {
		name     string
		min, max float64
	}{
		{name: "counts", min: 0, max: 95},
		{name: "fractions", min: 0.013, max: 0.41},
		{name: "large", min: -1200, max: 48000},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			candidates := Candidates(tc.min, tc.max, 900, cfg)
			require.NotEmpty(t, candidates)
			for length := 1.0; length <= 900; length++ {
				r := Compute(tc.min, tc.max, length, cfg)
				require.True(t, r.Valid)
				found := false
				for _, c := range candidates {
					if assert.ObjectsAreEqual(c.Labels, r.Labels) {
						found = true
						break
					}
				}
				assert.True(t, found, "labels at length %v: %v", length, r.Labels)
			}
		})
	}
	assert.Nil(t, Candidates(4, 4, 100, DefaultConfig()))
}
