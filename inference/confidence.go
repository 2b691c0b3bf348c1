package inference

import (
	"math"

	"github.com/uyouii/automation-impact/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// ConfidenceInterval estimates a two-sided Student t interval for the mean of
// sample at the given confidence level, e.g. 0.95.
//
// The sample standard deviation divides by n-1 and the critical value is the
// (1+level)/2 quantile of a t distribution with n-1 degrees of freedom.
func ConfidenceInterval(sample []float64, level float64) (*model.ConfidenceInterval, error) {
	if err := checkSample("sample", sample); err != nil {
		return nil, err
	}
	if err := checkLevel("confidence level", level); err != nil {
		return nil, err
	}

	n := len(sample)
	mean, variance := meanVariance(sample)
	if err := checkFinite("sample mean or variance", mean, variance); err != nil {
		return nil, err
	}
	stddev := math.Sqrt(variance)
	stderr := stddev / math.Sqrt(float64(n))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	critical := tDist.Quantile(1 - (1-level)/2)
	margin := critical * stderr
	if err := checkFinite("confidence interval", stderr, critical, mean-margin, mean+margin); err != nil {
		return nil, err
	}

	return &model.ConfidenceInterval{
		Mean:            mean,
		StdDev:          stddev,
		StdErr:          stderr,
		CriticalValue:   critical,
		Lower:           mean - margin,
		Upper:           mean + margin,
		ConfidenceLevel: level,
		SampleSize:      n,
	}, nil
}
