package regression

import (
	"fmt"
	"math"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
	"github.com/uyouii/automation-impact/utils"
	"gonum.org/v1/gonum/stat"
)

const MinPointCnt = 2

// LinearRegression fits y = intercept + slope*x by ordinary least squares.
//
// When ys is constant there is no variance to explain, the fit is the
// horizontal line through the mean and RSquared is reported as 0.
func LinearRegression(xs, ys []float64) (*model.RegressionResult, error) {
	if err := checkPairs(xs, ys); err != nil {
		return nil, err
	}
	if stat.Variance(xs, nil) == 0 {
		return nil, fmt.Errorf("%w: predictor has zero variance", common.ErrorDegenerateSample)
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	rSquared := 0.0
	if stat.Variance(ys, nil) > 0 {
		rSquared = clampUnit(stat.RSquared(xs, ys, nil, intercept, slope))
	} else {
		// exact zero, stat.LinearRegression can leave rounding noise
		slope = 0
		intercept = ys[0]
	}

	predictions := make([]float64, len(xs))
	for i, x := range xs {
		predictions[i] = intercept + slope*x
	}
	if err := checkFinite("regression fit", append([]float64{intercept, slope, rSquared}, predictions...)...); err != nil {
		return nil, err
	}

	return &model.RegressionResult{
		Slope:       slope,
		Intercept:   intercept,
		RSquared:    rSquared,
		Predictions: predictions,
	}, nil
}

// FitOrdinal encodes categories with EncodeOrdinal and fits a straight line
// through the codes. This reproduces the sequential integer encoding some
// dashboards use; the codes carry no real order, prefer FitCategorical.
func FitOrdinal(categories []string, ys []float64) (*model.OrdinalRegressionResult, error) {
	xs, codes := EncodeOrdinal(categories)
	res, err := LinearRegression(xs, ys)
	if err != nil {
		return nil, err
	}
	return &model.OrdinalRegressionResult{
		RegressionResult: *res,
		Codes:            codes,
	}, nil
}

func checkPairs(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d predictors for %d responses", common.ErrorInvalidValue, len(xs), len(ys))
	}
	return checkResponse(ys, xs)
}

func checkResponse(ys []float64, xs []float64) error {
	if len(ys) == 0 {
		return fmt.Errorf("%w: no points to fit", common.ErrorEmptySample)
	}
	if len(ys) < MinPointCnt {
		return fmt.Errorf("%w: %d point(s), need at least %d",
			common.ErrorInsufficientSampleSize, len(ys), MinPointCnt)
	}
	if !utils.AllFinite(ys) || !utils.AllFinite(xs) {
		return fmt.Errorf("%w: points contain NaN or Inf", common.ErrorInvalidValue)
	}
	for _, values := range [][]float64{ys, xs} {
		if len(values) == 0 {
			continue
		}
		if err := checkFinite("variance", stat.Variance(values, nil)); err != nil {
			return err
		}
	}
	return nil
}

// checkFinite rejects results that overflowed although every input was
// finite.
func checkFinite(what string, values ...float64) error {
	if !utils.AllFinite(values) {
		return fmt.Errorf("%w: %s overflows", common.ErrorInvalidValue, what)
	}
	return nil
}

func clampUnit(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
