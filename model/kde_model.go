package model

// Clip bounds the support of a density estimate. Impact is a percentage so
// the usual clip is [0, 100].
type Clip struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

func (c *Clip) Contains(x float64) bool {
	if c == nil {
		return true
	}
	return x >= c.Lower && x <= c.Upper
}

type Density struct {
	X     float64 `json:"x"`
	Value float64 `json:"density"`
}

type Cdf struct {
	X     float64 `json:"x"`
	Value float64 `json:"cdf"`
}

type QuantileValue struct {
	Value    float64 `json:"v"`
	Quantile float64 `json:"q"`
}

type ImpactDistribution struct {
	Bandwidth float64         `json:"bandwidth"`
	Density   []Density       `json:"density"`
	Quantiles []QuantileValue `json:"quantiles,omitempty"`
}
