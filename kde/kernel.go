package kde

import (
	"math"
)

type Kernel interface {
	// Shape is the kernel function at standardized distance u.
	Shape(u float64) float64
	NormalReferenceConstant() float64
}

type GaussianKernel struct {
	h                       float64
	normalReferenceConstant float64
}

func NewGaussianKernel() *GaussianKernel {
	return &GaussianKernel{h: 1.0}
}

func (k *GaussianKernel) SetH(h float64) {
	k.h = h
}

func (k *GaussianKernel) Shape(u float64) float64 {
	return 0.3989422804014327 * math.Exp(-u*u/2.0)
}

// NormalReferenceConstant is the rule of thumb constant of a second order
// kernel, about 1.059 for the Gaussian.
func (k *GaussianKernel) NormalReferenceConstant() float64 {
	if k.normalReferenceConstant == 0 {
		const order = 2
		l2Norm := 1.0 / (2.0 * math.Sqrt(math.Pi))
		variance := 1.0
		numerator := math.Sqrt(math.Pi) * math.Pow(factorial(order), 3) * l2Norm
		denom := 2.0 * order * factorial(2*order) * variance * variance
		k.normalReferenceConstant = 2 * math.Pow(numerator/denom, 1.0/(2*order+1))
	}
	return k.normalReferenceConstant
}

// Density evaluates the weighted kernel sum at x. weights must sum to 1.
func (k *GaussianKernel) Density(xs, weights []float64, x float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for i, xi := range xs {
		sum += k.Shape((xi-x)/k.h) * weights[i]
	}
	return sum / k.h
}
