package model

type ConfidenceInterval struct {
	Mean            float64 `json:"mean"`
	StdDev          float64 `json:"stddev"`
	StdErr          float64 `json:"stderr"`
	CriticalValue   float64 `json:"critical_value"`
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	ConfidenceLevel float64 `json:"confidence_level"`
	SampleSize      int     `json:"n"`
}

func (c *ConfidenceInterval) Margin() float64 {
	return c.Upper - c.Mean
}

func (c *ConfidenceInterval) Width() float64 {
	return c.Upper - c.Lower
}

type TestMethod string

const (
	WelchTest   TestMethod = "welch"
	StudentTest TestMethod = "student"
)

type HypothesisTestResult struct {
	Method           TestMethod `json:"method"`
	Statistic        float64    `json:"statistic"`
	PValue           float64    `json:"p_value"`
	Alpha            float64    `json:"alpha"`
	DegreesOfFreedom float64    `json:"df"`
	MeanA            float64    `json:"mean_a"`
	MeanB            float64    `json:"mean_b"`
	SizeA            int        `json:"n_a"`
	SizeB            int        `json:"n_b"`
}

// Significant applies the decision rule p < alpha.
func (h *HypothesisTestResult) Significant() bool {
	return h.PValue < h.Alpha
}

type RegressionResult struct {
	Slope       float64   `json:"slope"`
	Intercept   float64   `json:"intercept"`
	RSquared    float64   `json:"r_squared"`
	Predictions []float64 `json:"predictions"`
}

type CategoryEffect struct {
	Category string  `json:"category"`
	Effect   float64 `json:"effect"`
}

// CategoricalRegressionResult is a one-hot (dummy) encoded fit. Intercept is
// the baseline category's fitted value and each effect is the offset of a
// category from the baseline.
type CategoricalRegressionResult struct {
	Baseline    string           `json:"baseline"`
	Intercept   float64          `json:"intercept"`
	Effects     []CategoryEffect `json:"effects"`
	RSquared    float64          `json:"r_squared"`
	Predictions []float64        `json:"predictions"`
}

// OrdinalRegressionResult keeps the category codes used for the fit so that
// the caller can show which integer stands for which category.
type OrdinalRegressionResult struct {
	RegressionResult
	Codes []string `json:"codes"`
}

type AnovaResult struct {
	FStatistic   float64 `json:"f_statistic"`
	PValue       float64 `json:"p_value"`
	DfBetween    int     `json:"df_between"`
	DfWithin     int     `json:"df_within"`
	SumSqBetween float64 `json:"ss_between"`
	SumSqWithin  float64 `json:"ss_within"`
	Groups       int     `json:"groups"`
	Observations int     `json:"n"`
}

// Summary mirrors the columns of a tabular describe(): count, mean, std,
// min, 25%, 50%, 75%, max.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

type GroupMean struct {
	Key   string  `json:"key"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}
