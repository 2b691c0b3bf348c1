package kde

import (
	"fmt"
	"math"
	"sort"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
	"github.com/uyouii/automation-impact/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// KDEUnivariate is a Gaussian kernel density estimate of one sample whose
// support is truncated to clip.
type KDEUnivariate struct {
	// Defines the length of the grid past the lowest and highest values
	// of x so that the kernel goes to zero. The end points are
	// ``min(x) - cut * bw`` and ``max(x) + cut * bw``, bounded by clip.
	cut      float64
	gridSize int
	clip     *model.Clip

	// sorted sample
	Endog   []float64
	weights []float64

	density []model.Density
	cdf     []model.Cdf
	grid    []float64
	bw      float64
	fitted  bool
	kernel  *GaussianKernel
}

func NewKDEUnivariate(sample []float64, clip *model.Clip) (*KDEUnivariate, error) {
	if !utils.AllFinite(sample) {
		return nil, fmt.Errorf("%w: sample contains NaN or Inf", common.ErrorInvalidValue)
	}

	endog := append([]float64(nil), sample...)
	sort.Float64s(endog)
	endog = clipValues(endog, clip)

	if len(endog) == 0 {
		return nil, common.ErrorEmptySample
	}

	return &KDEUnivariate{
		cut:      DefaultCut,
		gridSize: utils.IntMax(len(endog), DefaultGridSize),
		clip:     clip,
		Endog:    endog,
		weights:  uniformWeights(len(endog)),
	}, nil
}

func (kde *KDEUnivariate) Kdensity() ([]model.Density, float64, error) {
	if kde.fitted {
		return kde.density, kde.bw, nil
	}

	kernel := NewGaussianKernel()
	bw := NewNormalReferenceBandWidth(kernel).BandWidth(kde.Endog)
	if bw <= 0 || math.IsNaN(bw) {
		return nil, 0, fmt.Errorf("%w: bandwidth is zero, sample has no spread", common.ErrorDegenerateSample)
	}
	kernel.SetH(bw)

	a := floats.Min(kde.Endog) - kde.cut*bw
	b := floats.Max(kde.Endog) + kde.cut*bw
	if kde.clip != nil {
		a = math.Max(a, kde.clip.Lower)
		b = math.Min(b, kde.clip.Upper)
	}
	grid := linspace(a, b, kde.gridSize)

	res := make([]model.Density, len(grid))
	for i, x := range grid {
		res[i] = model.Density{
			X:     x,
			Value: kernel.Density(kde.Endog, kde.weights, x),
		}
	}

	kde.density = res
	kde.bw = bw
	kde.grid = grid
	kde.fitted = true
	kde.kernel = kernel

	return res, bw, nil
}

// Cdf integrates the density over the grid. The mass cut off by the clip is
// redistributed so the last value is 1.
func (kde *KDEUnivariate) Cdf() ([]model.Cdf, error) {
	if _, _, err := kde.Kdensity(); err != nil {
		return nil, err
	}

	if len(kde.cdf) > 0 {
		return kde.cdf, nil
	}

	f := func(x float64) float64 {
		return kde.kernel.Density(kde.Endog, kde.weights, x)
	}

	res := make([]model.Cdf, 0, len(kde.grid))
	res = append(res, model.Cdf{X: kde.grid[0], Value: 0})

	var cumSum float64
	for i := 1; i < len(kde.grid); i++ {
		cumSum += quad.Fixed(f, kde.grid[i-1], kde.grid[i], 50, nil, 0)
		res = append(res, model.Cdf{
			X:     kde.grid[i],
			Value: cumSum,
		})
	}

	if cumSum > 0 {
		for i := range res {
			res[i].Value /= cumSum
		}
	}

	kde.cdf = res
	return res, nil
}

func (kde *KDEUnivariate) Quantile(p float64) (*model.QuantileValue, error) {
	if !(p >= 0 && p <= 1) {
		return nil, fmt.Errorf("%w: quantile %v is outside [0, 1]", common.ErrorInvalidValue, p)
	}

	cdf, err := kde.Cdf()
	if err != nil {
		return nil, err
	}

	if p <= cdf[0].Value {
		return &model.QuantileValue{Quantile: p, Value: cdf[0].X}, nil
	}

	for i := 1; i < len(cdf); i++ {
		if cdf[i].Value > p {
			lowerX, lowerP := cdf[i-1].X, cdf[i-1].Value
			upperX, upperP := cdf[i].X, cdf[i].Value
			value := lowerX + (upperX-lowerX)*(p-lowerP)/(upperP-lowerP)
			return &model.QuantileValue{Quantile: p, Value: value}, nil
		}
	}
	return &model.QuantileValue{Quantile: p, Value: cdf[len(cdf)-1].X}, nil
}
