package describe

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
	"github.com/uyouii/automation-impact/utils"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes the describe() table of a sample. Quartiles use the
// empirical (nearest rank) definition. StdDev divides by n-1 and is 0 for a
// single observation.
func Summarize(sample []float64) (*model.Summary, error) {
	if len(sample) == 0 {
		return nil, common.ErrorEmptySample
	}
	if !utils.AllFinite(sample) {
		return nil, fmt.Errorf("%w: sample contains NaN or Inf", common.ErrorInvalidValue)
	}

	data := stats.LoadRawData(sample)
	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, err
	}

	stddev := 0.0
	if len(sample) > 1 {
		stddev, err = stats.StandardDeviationSample(data)
		if err != nil {
			return nil, err
		}
	}

	if !utils.AllFinite([]float64{mean, stddev}) {
		return nil, fmt.Errorf("%w: sample mean or deviation overflows", common.ErrorInvalidValue)
	}

	sorted := append([]float64(nil), sample...)
	sort.Float64s(sorted)

	return &model.Summary{
		Count:  len(sample),
		Mean:   mean,
		StdDev: stddev,
		Min:    min,
		Q25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: median,
		Q75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    max,
	}, nil
}

// GroupMeans averages values per key and sorts the groups by mean, highest
// first; ties are broken by key.
func GroupMeans(keys []string, values []float64) ([]model.GroupMean, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys for %d values", common.ErrorInvalidValue, len(keys), len(values))
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	for i, k := range keys {
		sums[k] += values[i]
		counts[k]++
	}

	res := make([]model.GroupMean, 0, len(sums))
	for k, sum := range sums {
		mean := sum / float64(counts[k])
		if math.IsNaN(mean) || math.IsInf(mean, 0) {
			return nil, fmt.Errorf("%w: mean of %q overflows", common.ErrorInvalidValue, k)
		}
		res = append(res, model.GroupMean{
			Key:   k,
			Mean:  mean,
			Count: counts[k],
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Mean != res[j].Mean {
			return res[i].Mean > res[j].Mean
		}
		return res[i].Key < res[j].Key
	})
	return res, nil
}
