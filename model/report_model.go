package model

type Direction string

const (
	Higher Direction = "higher"
	Lower  Direction = "lower"
	Equal  Direction = "equal"
)

// SectorComparison compares one sector against all other records.
type SectorComparison struct {
	Sector      string               `json:"sector"`
	Test        HypothesisTestResult `json:"test"`
	Direction   Direction            `json:"direction"`
	Significant bool                 `json:"significant"`
}

type RegionRegression struct {
	Encoding    string                       `json:"encoding"`
	Ordinal     *OrdinalRegressionResult     `json:"ordinal,omitempty"`
	Categorical *CategoricalRegressionResult `json:"categorical,omitempty"`
	Anova       *AnovaResult                 `json:"anova,omitempty"`
	AnovaError  string                       `json:"anova_error,omitempty"`
}

// SectorReport holds every statistic of one sector. A statistic that could
// not be computed leaves its field nil and records the reason instead.
type SectorReport struct {
	Sector            string              `json:"sector"`
	Summary           *Summary            `json:"summary,omitempty"`
	Interval          *ConfidenceInterval `json:"interval,omitempty"`
	IntervalError     string              `json:"interval_error,omitempty"`
	Comparison        *SectorComparison   `json:"comparison,omitempty"`
	ComparisonError   string              `json:"comparison_error,omitempty"`
	Distribution      *ImpactDistribution `json:"distribution,omitempty"`
	DistributionError string              `json:"distribution_error,omitempty"`
}

type Report struct {
	Snapshot        SnapshotInfo      `json:"snapshot"`
	Overall         Summary           `json:"overall"`
	Ranking         []GroupMean       `json:"ranking"`
	Sectors         []SectorReport    `json:"sectors"`
	Regression      *RegionRegression `json:"regression,omitempty"`
	RegressionError string            `json:"regression_error,omitempty"`
	ConfidenceLevel float64           `json:"confidence_level"`
	Alpha           float64           `json:"alpha"`
}
