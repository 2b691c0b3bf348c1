package kde

const (
	// impact is a percentage
	ImpactLowerBound = 0.0
	ImpactUpperBound = 100.0

	DefaultCut      = 3.0
	DefaultGridSize = 100

	MinEstimatePointCnt = 3
)

var (
	ReportQuantiles = []float64{0.05, 0.25, 0.5, 0.75, 0.95}
)
