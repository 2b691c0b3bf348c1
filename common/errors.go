package common

import "errors"

var (
	ErrorInvalidValue = errors.New("invalid value")

	// statistics
	ErrorEmptySample            = errors.New("empty sample")
	ErrorInsufficientSampleSize = errors.New("insufficient sample size")
	ErrorDegenerateSample       = errors.New("degenerate sample")
	ErrorInvalidConfidenceLevel = errors.New("invalid confidence level")

	// dataset
	ErrorMissingColumn     = errors.New("missing required column")
	ErrorUnsupportedFormat = errors.New("unsupported dataset format")
	ErrorUnknownSector     = errors.New("unknown sector")
)

// IsStatisticsError reports whether err comes from a statistic that could not
// be computed for the given input, as opposed to an I/O or internal failure.
func IsStatisticsError(err error) bool {
	return errors.Is(err, ErrorEmptySample) ||
		errors.Is(err, ErrorInsufficientSampleSize) ||
		errors.Is(err, ErrorDegenerateSample) ||
		errors.Is(err, ErrorInvalidConfidenceLevel) ||
		errors.Is(err, ErrorInvalidValue)
}
