package regression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/automation-impact/common"
)

func TestEncodeOrdinal(t *testing.T) {
	xs, codes := EncodeOrdinal([]string{"b", "a", "b", "c"})
	assert.Equal(t, []float64{0, 1, 0, 2}, xs)
	assert.Equal(t, []string{"b", "a", "c"}, codes)

	xs, codes = EncodeOrdinal(nil)
	assert.Empty(t, xs)
	assert.Empty(t, codes)
}

func TestEncodeOneHot(t *testing.T) {
	rows, baseline, levels := EncodeOneHot([]string{"south", "east", "north", "east"})
	assert.Equal(t, "east", baseline)
	assert.Equal(t, []string{"north", "south"}, levels)
	assert.Equal(t, [][]float64{{0, 1}, {0, 0}, {1, 0}, {0, 0}}, rows)

	rows, baseline, levels = EncodeOneHot(nil)
	assert.Nil(t, rows)
	assert.Equal(t, "", baseline)
	assert.Nil(t, levels)
}

func TestFitCategoricalRecoversGroupMeans(t *testing.T) {
	categories := []string{"A", "A", "B", "B", "C", "C"}
	ys := []float64{1, 3, 5, 7, 10, 12}

	res, err := FitCategorical(categories, ys)
	require.NoError(t, err)

	assert.Equal(t, "A", res.Baseline)
	assert.InDelta(t, 2.0, res.Intercept, 1e-9)
	require.Len(t, res.Effects, 2)
	assert.Equal(t, "B", res.Effects[0].Category)
	assert.InDelta(t, 4.0, res.Effects[0].Effect, 1e-9)
	assert.Equal(t, "C", res.Effects[1].Category)
	assert.InDelta(t, 9.0, res.Effects[1].Effect, 1e-9)

	for i, want := range []float64{2, 2, 6, 6, 11, 11} {
		assert.InDelta(t, want, res.Predictions[i], 1e-9)
	}
	assert.InDelta(t, 1-6.0/87.333333333, res.RSquared, 1e-6)
}

func TestFitCategoricalIgnoresLabelOrder(t *testing.T) {
	ys := []float64{1, 3, 5, 7, 10, 12}
	a, err := FitCategorical([]string{"x", "x", "y", "y", "z", "z"}, ys)
	require.NoError(t, err)
	b, err := FitCategorical([]string{"z", "z", "x", "x", "y", "y"}, ys)
	require.NoError(t, err)

	// relabelling categories changes ordinal fits but not the one-hot fit
	assert.InDelta(t, a.RSquared, b.RSquared, 1e-9)
	assert.InDeltaSlice(t, a.Predictions, b.Predictions, 1e-9)
}

func TestFitCategoricalConstantResponse(t *testing.T) {
	res, err := FitCategorical([]string{"a", "a", "b", "b"}, []float64{4, 4, 4, 4})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.RSquared)
	assert.InDelta(t, 4.0, res.Intercept, 1e-9)
	require.Len(t, res.Effects, 1)
	assert.Equal(t, "b", res.Effects[0].Category)
	assert.InDelta(t, 0.0, res.Effects[0].Effect, 1e-9)
}

func TestFitCategoricalErrors(t *testing.T) {
	_, err := FitCategorical(nil, nil)
	assert.ErrorIs(t, err, common.ErrorEmptySample)

	_, err = FitCategorical([]string{"a"}, []float64{1, 2})
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, err = FitCategorical([]string{"a", "a", "a"}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, common.ErrorDegenerateSample)

	_, err = FitCategorical([]string{"a", "b"}, []float64{1, 2})
	assert.ErrorIs(t, err, common.ErrorInsufficientSampleSize)

	_, err = FitCategorical([]string{"a", "a", "b"}, []float64{1e308, 1.5e308, 1})
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}

func TestOneWayANOVA(t *testing.T) {
	res, err := OneWayANOVA([]string{"A", "A", "B", "B", "C", "C"}, []float64{1, 3, 5, 7, 10, 12})
	require.NoError(t, err)

	assert.Equal(t, 2, res.DfBetween)
	assert.Equal(t, 3, res.DfWithin)
	assert.Equal(t, 3, res.Groups)
	assert.Equal(t, 6, res.Observations)
	assert.InDelta(t, 81.333333, res.SumSqBetween, 1e-5)
	assert.InDelta(t, 6.0, res.SumSqWithin, 1e-9)
	assert.InDelta(t, 20.333333, res.FStatistic, 1e-5)
	assert.Less(t, res.PValue, 0.05)
	assert.Greater(t, res.PValue, 0.0)
}

func TestOneWayANOVAErrors(t *testing.T) {
	_, err := OneWayANOVA([]string{}, []float64{})
	assert.ErrorIs(t, err, common.ErrorEmptySample)

	_, err = OneWayANOVA([]string{"a", "a"}, []float64{1, 2})
	assert.ErrorIs(t, err, common.ErrorDegenerateSample)

	_, err = OneWayANOVA([]string{"a", "b"}, []float64{1, 2})
	assert.ErrorIs(t, err, common.ErrorInsufficientSampleSize)

	_, err = OneWayANOVA([]string{"a", "a", "b", "b"}, []float64{1, 1, 2, 2})
	assert.ErrorIs(t, err, common.ErrorDegenerateSample)

	_, err = OneWayANOVA([]string{"a", "a", "b", "b"}, []float64{1e200, -1e200, 1, 2})
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}
