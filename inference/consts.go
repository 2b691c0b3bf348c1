package inference

const (
	DefaultConfidenceLevel = 0.95
	DefaultAlpha           = 0.05

	// variance based statistics need at least one degree of freedom
	MinSampleSize = 2
)
