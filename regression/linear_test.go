package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/automation-impact/common"
)

func TestLinearRegressionPerfectLine(t *testing.T) {
	res, err := LinearRegression([]float64{1, 2, 3, 4}, []float64{5, 7, 9, 11})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, res.Slope, 1e-9)
	assert.InDelta(t, 3.0, res.Intercept, 1e-9)
	assert.InDelta(t, 1.0, res.RSquared, 1e-9)
	require.Len(t, res.Predictions, 4)
	for i, want := range []float64{5, 7, 9, 11} {
		assert.InDelta(t, want, res.Predictions[i], 1e-9)
	}
}

func TestLinearRegressionConstantResponse(t *testing.T) {
	res, err := LinearRegression([]float64{1, 2, 3, 4}, []float64{5, 5, 5, 5})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Slope)
	assert.Equal(t, 5.0, res.Intercept)
	assert.Equal(t, 0.0, res.RSquared)
	assert.Equal(t, []float64{5, 5, 5, 5}, res.Predictions)
}

func TestLinearRegressionNoisy(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	ys := []float64{1.2, 2.9, 5.1, 7.2, 8.8, 11.1, 13.2, 14.7}
	res, err := LinearRegression(xs, ys)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, res.Slope, 0.1)
	assert.Greater(t, res.RSquared, 0.99)
	assert.LessOrEqual(t, res.RSquared, 1.0)

	// negative relationship still has a non-negative R²
	neg, err := LinearRegression(xs, []float64{9, 3, 8, 1, 7, 0, 2, 1})
	require.NoError(t, err)
	assert.Less(t, neg.Slope, 0.0)
	assert.GreaterOrEqual(t, neg.RSquared, 0.0)
	assert.LessOrEqual(t, neg.RSquared, 1.0)
}

func TestLinearRegressionErrors(t *testing.T) {
	cases := []struct {
		name   string
		xs, ys []float64
		want   error
	}{
		{"empty", nil, nil, common.ErrorEmptySample},
		{"single point", []float64{1}, []float64{2}, common.ErrorInsufficientSampleSize},
		{"length mismatch", []float64{1, 2, 3}, []float64{1, 2}, common.ErrorInvalidValue},
		{"constant predictor", []float64{3, 3, 3}, []float64{1, 2, 3}, common.ErrorDegenerateSample},
		{"nan response", []float64{1, 2}, []float64{1, math.NaN()}, common.ErrorInvalidValue},
		{"inf predictor", []float64{1, math.Inf(1)}, []float64{1, 2}, common.ErrorInvalidValue},
		{"response overflow", []float64{0, 1}, []float64{1e308, 1.5e308}, common.ErrorInvalidValue},
		{"predictor overflow", []float64{1e200, -1e200}, []float64{1, 2}, common.ErrorInvalidValue},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := LinearRegression(c.xs, c.ys)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestFitOrdinal(t *testing.T) {
	regions := []string{"Global", "Global", "North America", "Europe", "Latin America"}
	impacts := []float64{70, 50, 40, 35, 20}

	res, err := FitOrdinal(regions, impacts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Global", "North America", "Europe", "Latin America"}, res.Codes)
	assert.Less(t, res.Slope, 0.0)
	assert.Len(t, res.Predictions, len(impacts))

	_, err = FitOrdinal([]string{"Global", "Global"}, []float64{1, 2})
	assert.ErrorIs(t, err, common.ErrorDegenerateSample)
}
