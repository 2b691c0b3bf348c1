package kde

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type BandWidth interface {
	BandWidth(sorted []float64) float64
}

// NormalReferenceBandWidth is Silverman's rule with the robust spread
// min(stddev, IQR/1.349).
type NormalReferenceBandWidth struct {
	kernel Kernel
}

func NewNormalReferenceBandWidth(kernel Kernel) *NormalReferenceBandWidth {
	if kernel == nil {
		kernel = NewGaussianKernel()
	}
	return &NormalReferenceBandWidth{
		kernel: kernel,
	}
}

func (bw *NormalReferenceBandWidth) BandWidth(sorted []float64) float64 {
	c := bw.kernel.NormalReferenceConstant()
	a := selectSigma(sorted)
	n := len(sorted)
	return c * a * math.Pow(float64(n), -0.2)
}

func selectSigma(sorted []float64) float64 {
	const normalize = 1.349

	q75 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	q25 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	iqr := (q75 - q25) / normalize

	stdDev := stat.StdDev(sorted, nil)

	if iqr > 0 && iqr < stdDev {
		return iqr
	}
	return stdDev
}
