package regression

import (
	"fmt"
	"math"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// OneWayANOVA tests whether the mean of ys differs between categories. It is
// the significance test that goes with FitCategorical.
func OneWayANOVA(categories []string, ys []float64) (*model.AnovaResult, error) {
	if len(categories) != len(ys) {
		return nil, fmt.Errorf("%w: %d categories for %d responses",
			common.ErrorInvalidValue, len(categories), len(ys))
	}
	if err := checkResponse(ys, nil); err != nil {
		return nil, err
	}

	groups := map[string][]float64{}
	for i, c := range categories {
		groups[c] = append(groups[c], ys[i])
	}
	k, n := len(groups), len(ys)
	if k < 2 {
		return nil, fmt.Errorf("%w: need at least 2 categories", common.ErrorDegenerateSample)
	}
	if n <= k {
		return nil, fmt.Errorf("%w: %d points for %d categories", common.ErrorInsufficientSampleSize, n, k)
	}

	grandMean := stat.Mean(ys, nil)
	ssBetween, ssWithin := 0.0, 0.0
	for _, g := range groups {
		m := stat.Mean(g, nil)
		ssBetween += float64(len(g)) * (m - grandMean) * (m - grandMean)
		for _, y := range g {
			ssWithin += (y - m) * (y - m)
		}
	}
	if ssWithin == 0 {
		return nil, fmt.Errorf("%w: no variance within categories", common.ErrorDegenerateSample)
	}

	dfBetween, dfWithin := k-1, n-k
	f := (ssBetween / float64(dfBetween)) / (ssWithin / float64(dfWithin))
	fDist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
	pValue := fDist.Survival(f)
	if err := checkFinite("F statistic", ssBetween, ssWithin, f, pValue); err != nil {
		return nil, err
	}
	pValue = math.Min(math.Max(pValue, 0), 1)

	return &model.AnovaResult{
		FStatistic:   f,
		PValue:       pValue,
		DfBetween:    dfBetween,
		DfWithin:     dfWithin,
		SumSqBetween: ssBetween,
		SumSqWithin:  ssWithin,
		Groups:       k,
		Observations: n,
	}, nil
}
