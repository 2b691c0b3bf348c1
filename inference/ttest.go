package inference

import (
	"fmt"
	"math"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// TwoSampleTest runs Welch's unequal variance t-test on two independent
// samples and returns the statistic for mean(a) - mean(b) with its two-tailed
// p-value. Labeling the outcome is left to the caller, see
// HypothesisTestResult.Significant.
func TwoSampleTest(a, b []float64, alpha float64) (*model.HypothesisTestResult, error) {
	return TwoSampleTestWith(a, b, alpha, false)
}

// TwoSampleTestWith is TwoSampleTest with a choice of Student's pooled
// variance test when equalVariance is set.
func TwoSampleTestWith(a, b []float64, alpha float64, equalVariance bool) (*model.HypothesisTestResult, error) {
	if err := checkSample("sample a", a); err != nil {
		return nil, err
	}
	if err := checkSample("sample b", b); err != nil {
		return nil, err
	}
	if err := checkLevel("alpha", alpha); err != nil {
		return nil, err
	}

	meanA, varA := meanVariance(a)
	meanB, varB := meanVariance(b)
	if err := checkFinite("sample mean or variance", meanA, varA, meanB, varB); err != nil {
		return nil, err
	}
	if varA == 0 {
		return nil, fmt.Errorf("%w: sample a has zero variance", common.ErrorDegenerateSample)
	}
	if varB == 0 {
		return nil, fmt.Errorf("%w: sample b has zero variance", common.ErrorDegenerateSample)
	}

	nA, nB := float64(len(a)), float64(len(b))

	var stderr, df float64
	method := model.WelchTest
	if equalVariance {
		method = model.StudentTest
		df = nA + nB - 2
		pooled := ((nA-1)*varA + (nB-1)*varB) / df
		stderr = math.Sqrt(pooled * (1/nA + 1/nB))
	} else {
		seA, seB := varA/nA, varB/nB
		stderr = math.Sqrt(seA + seB)
		// Welch-Satterthwaite
		df = (seA + seB) * (seA + seB) / (seA*seA/(nA-1) + seB*seB/(nB-1))
	}

	statistic := (meanA - meanB) / stderr
	if err := checkFinite("t statistic", stderr, df, statistic); err != nil {
		return nil, err
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * tDist.Survival(math.Abs(statistic))
	if err := checkFinite("p-value", pValue); err != nil {
		return nil, err
	}
	pValue = math.Min(math.Max(pValue, 0), 1)

	return &model.HypothesisTestResult{
		Method:           method,
		Statistic:        statistic,
		PValue:           pValue,
		Alpha:            alpha,
		DegreesOfFreedom: df,
		MeanA:            meanA,
		MeanB:            meanB,
		SizeA:            len(a),
		SizeB:            len(b),
	}, nil
}
