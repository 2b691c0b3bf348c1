package inference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
)

func TestTwoSampleTestSeparatedGroups(t *testing.T) {
	res, err := TwoSampleTest([]float64{80, 85, 90}, []float64{40, 45, 50}, DefaultAlpha)
	require.NoError(t, err)

	assert.Equal(t, model.WelchTest, res.Method)
	// equal variances and sizes: t = 40 / sqrt(25/3 + 25/3), df = 4
	assert.InDelta(t, 9.798, res.Statistic, 1e-3)
	assert.InDelta(t, 4.0, res.DegreesOfFreedom, 1e-9)
	assert.Less(t, res.PValue, 0.05)
	assert.True(t, res.Significant())
	assert.Equal(t, 85.0, res.MeanA)
	assert.Equal(t, 45.0, res.MeanB)
	assert.Equal(t, 3, res.SizeA)
	assert.Equal(t, 3, res.SizeB)
}

func TestTwoSampleTestOverlappingGroups(t *testing.T) {
	res, err := TwoSampleTest([]float64{50, 60, 55, 52}, []float64{51, 58, 54, 56}, DefaultAlpha)
	require.NoError(t, err)
	assert.Greater(t, res.PValue, 0.05)
	assert.False(t, res.Significant())
}

func TestTwoSampleTestSymmetry(t *testing.T) {
	pairs := [][2][]float64{
		{{80, 85, 90}, {40, 45, 50}},
		{{1, 2, 3, 4, 5}, {2, 4, 9}},
		{{70, 72, 68, 71, 69}, {50, 40, 35, 20, 41, 33}},
	}
	for _, equalVariance := range []bool{false, true} {
		for _, p := range pairs {
			ab, err := TwoSampleTestWith(p[0], p[1], DefaultAlpha, equalVariance)
			require.NoError(t, err)
			ba, err := TwoSampleTestWith(p[1], p[0], DefaultAlpha, equalVariance)
			require.NoError(t, err)
			assert.InDelta(t, ab.Statistic, -ba.Statistic, 1e-12)
			assert.InDelta(t, ab.PValue, ba.PValue, 1e-12)
			assert.GreaterOrEqual(t, ab.PValue, 0.0)
			assert.LessOrEqual(t, ab.PValue, 1.0)
		}
	}
}

func TestTwoSampleTestStudent(t *testing.T) {
	res, err := TwoSampleTestWith([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 9}, DefaultAlpha, true)
	require.NoError(t, err)
	assert.Equal(t, model.StudentTest, res.Method)
	assert.InDelta(t, 6.0, res.DegreesOfFreedom, 1e-12)

	welch, err := TwoSampleTest([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 9}, DefaultAlpha)
	require.NoError(t, err)
	assert.Less(t, welch.DegreesOfFreedom, res.DegreesOfFreedom)
}

func TestTwoSampleTestErrors(t *testing.T) {
	cases := []struct {
		name  string
		a, b  []float64
		alpha float64
		want  error
	}{
		{"empty a", nil, []float64{1, 2}, 0.05, common.ErrorEmptySample},
		{"empty b", []float64{1, 2}, []float64{}, 0.05, common.ErrorEmptySample},
		{"single a", []float64{1}, []float64{1, 2}, 0.05, common.ErrorInsufficientSampleSize},
		{"single b", []float64{1, 2}, []float64{3}, 0.05, common.ErrorInsufficientSampleSize},
		{"constant a", []float64{5, 5, 5}, []float64{1, 2}, 0.05, common.ErrorDegenerateSample},
		{"constant b", []float64{1, 2}, []float64{7, 7}, 0.05, common.ErrorDegenerateSample},
		{"bad alpha", []float64{1, 2}, []float64{3, 4}, 1.5, common.ErrorInvalidConfidenceLevel},
		{"nan", []float64{1, math.NaN()}, []float64{3, 4}, 0.05, common.ErrorInvalidValue},
		{"mean overflow", []float64{1e308, 1.5e308}, []float64{1, 2}, 0.05, common.ErrorInvalidValue},
		{"variance overflow", []float64{1, 2}, []float64{1e200, -1e200}, 0.05, common.ErrorInvalidValue},
		{"degrees of freedom overflow", []float64{0, 2e150}, []float64{1, 2}, 0.05, common.ErrorInvalidValue},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := TwoSampleTest(c.a, c.b, c.alpha)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, c.want)
		})
	}
}
