package inference

import (
	"fmt"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/utils"
	"gonum.org/v1/gonum/stat"
)

func checkSample(name string, sample []float64) error {
	if len(sample) == 0 {
		return fmt.Errorf("%w: %s has no observations", common.ErrorEmptySample, name)
	}
	if len(sample) < MinSampleSize {
		return fmt.Errorf("%w: %s has %d observation(s), need at least %d",
			common.ErrorInsufficientSampleSize, name, len(sample), MinSampleSize)
	}
	if !utils.AllFinite(sample) {
		return fmt.Errorf("%w: %s contains NaN or Inf", common.ErrorInvalidValue, name)
	}
	return nil
}

func checkLevel(name string, level float64) error {
	// also rejects NaN
	if !(level > 0 && level < 1) {
		return fmt.Errorf("%w: %s %v is outside (0, 1)", common.ErrorInvalidConfidenceLevel, name, level)
	}
	return nil
}

// checkFinite rejects results that overflowed although every input was
// finite, e.g. the mean of values near math.MaxFloat64.
func checkFinite(what string, values ...float64) error {
	if !utils.AllFinite(values) {
		return fmt.Errorf("%w: %s overflows", common.ErrorInvalidValue, what)
	}
	return nil
}

// meanVariance returns the mean and the Bessel corrected variance.
func meanVariance(sample []float64) (float64, float64) {
	return stat.MeanVariance(sample, nil)
}
