package regression

import (
	"fmt"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// FitCategorical regresses ys on a categorical predictor using one-hot
// encoding with a held out baseline, so no order or distance between
// categories is implied.
func FitCategorical(categories []string, ys []float64) (*model.CategoricalRegressionResult, error) {
	if len(categories) != len(ys) {
		return nil, fmt.Errorf("%w: %d categories for %d responses",
			common.ErrorInvalidValue, len(categories), len(ys))
	}
	if err := checkResponse(ys, nil); err != nil {
		return nil, err
	}

	rows, baseline, levels := EncodeOneHot(categories)
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: predictor has a single category %q", common.ErrorDegenerateSample, baseline)
	}

	n, p := len(ys), len(levels)+1
	if n <= p {
		return nil, fmt.Errorf("%w: %d points for %d categories", common.ErrorInsufficientSampleSize, n, p)
	}

	design := mat.NewDense(n, p, nil)
	for i, row := range rows {
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	response := mat.NewVecDense(n, append([]float64(nil), ys...))

	var beta mat.VecDense
	if err := beta.SolveVec(design, response); err != nil {
		return nil, fmt.Errorf("%w: least squares failed: %v", common.ErrorDegenerateSample, err)
	}

	var fitted mat.VecDense
	fitted.MulVec(design, &beta)
	predictions := make([]float64, n)
	ssRes := 0.0
	for i := range predictions {
		predictions[i] = fitted.AtVec(i)
		r := ys[i] - predictions[i]
		ssRes += r * r
	}

	rSquared := 0.0
	if ssTot := stat.Variance(ys, nil) * float64(n-1); ssTot > 0 {
		rSquared = clampUnit(1 - ssRes/ssTot)
	}

	for j := 0; j < p; j++ {
		if err := checkFinite("regression coefficient", beta.AtVec(j)); err != nil {
			return nil, err
		}
	}
	if err := checkFinite("regression fit", predictions...); err != nil {
		return nil, err
	}

	effects := make([]model.CategoryEffect, len(levels))
	for j, l := range levels {
		effects[j] = model.CategoryEffect{Category: l, Effect: beta.AtVec(j + 1)}
	}

	return &model.CategoricalRegressionResult{
		Baseline:    baseline,
		Intercept:   beta.AtVec(0),
		Effects:     effects,
		RSquared:    rSquared,
		Predictions: predictions,
	}, nil
}
