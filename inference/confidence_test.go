package inference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/automation-impact/common"
)

func TestConfidenceIntervalTechnologySector(t *testing.T) {
	ci, err := ConfidenceInterval([]float64{70, 72, 68, 71, 69}, 0.95)
	require.NoError(t, err)

	assert.InDelta(t, 70.0, ci.Mean, 1e-12)
	assert.InDelta(t, 1.5811, ci.StdDev, 1e-4)
	assert.InDelta(t, 0.7071, ci.StdErr, 1e-4)
	assert.InDelta(t, 2.7764, ci.CriticalValue, 1e-3)
	assert.InDelta(t, 68.04, ci.Lower, 0.01)
	assert.InDelta(t, 71.96, ci.Upper, 0.01)
	assert.Equal(t, 0.95, ci.ConfidenceLevel)
	assert.Equal(t, 5, ci.SampleSize)
}

func TestConfidenceIntervalBoundsAndSymmetry(t *testing.T) {
	samples := [][]float64{
		{1, 2},
		{20, 35, 40, 50, 70},
		{-3.5, 0, 2.25, 1e3, 17},
		{5, 5, 5},
		{0.1, 0.2, 0.30000000000000004, 0.4},
	}
	for _, sample := range samples {
		for _, level := range []float64{0.5, 0.9, 0.95, 0.99} {
			ci, err := ConfidenceInterval(sample, level)
			require.NoError(t, err)
			assert.LessOrEqual(t, ci.Lower, ci.Mean)
			assert.LessOrEqual(t, ci.Mean, ci.Upper)
			assert.InDelta(t, ci.Upper-ci.Mean, ci.Mean-ci.Lower, 1e-9)
			assert.False(t, math.IsNaN(ci.Lower) || math.IsNaN(ci.Upper))
		}
	}
}

func TestConfidenceIntervalWidthShrinksWithSampleSize(t *testing.T) {
	prev := math.Inf(1)
	for n := 2; n <= 40; n += 2 {
		sample := make([]float64, n)
		for i := range sample {
			if i%2 == 0 {
				sample[i] = 49
			} else {
				sample[i] = 51
			}
		}
		ci, err := ConfidenceInterval(sample, DefaultConfidenceLevel)
		require.NoError(t, err)
		assert.LessOrEqual(t, ci.Width(), prev, "n=%d", n)
		prev = ci.Width()
	}
}

func TestConfidenceIntervalHigherLevelIsWider(t *testing.T) {
	sample := []float64{70, 72, 68, 71, 69}
	ci90, err := ConfidenceInterval(sample, 0.90)
	require.NoError(t, err)
	ci99, err := ConfidenceInterval(sample, 0.99)
	require.NoError(t, err)
	assert.Greater(t, ci99.Width(), ci90.Width())
}

func TestConfidenceIntervalErrors(t *testing.T) {
	cases := []struct {
		name   string
		sample []float64
		level  float64
		want   error
	}{
		{"nil sample", nil, 0.95, common.ErrorEmptySample},
		{"empty sample", []float64{}, 0.95, common.ErrorEmptySample},
		{"single observation", []float64{70}, 0.95, common.ErrorInsufficientSampleSize},
		{"level zero", []float64{1, 2}, 0, common.ErrorInvalidConfidenceLevel},
		{"level one", []float64{1, 2}, 1, common.ErrorInvalidConfidenceLevel},
		{"level percent", []float64{1, 2}, 95, common.ErrorInvalidConfidenceLevel},
		{"level nan", []float64{1, 2}, math.NaN(), common.ErrorInvalidConfidenceLevel},
		{"nan value", []float64{1, math.NaN()}, 0.95, common.ErrorInvalidValue},
		{"inf value", []float64{1, math.Inf(1)}, 0.95, common.ErrorInvalidValue},
		{"mean overflow", []float64{1e308, 1.5e308}, 0.95, common.ErrorInvalidValue},
		{"variance overflow", []float64{1e200, -1e200}, 0.95, common.ErrorInvalidValue},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ci, err := ConfidenceInterval(c.sample, c.level)
			assert.Nil(t, ci)
			assert.ErrorIs(t, err, c.want)
		})
	}
}
