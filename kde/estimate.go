package kde

import (
	"context"
	"fmt"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
	"github.com/uyouii/automation-impact/utils"
	"go.uber.org/zap"
)

// Estimate computes the impact distribution of a sample on the percent scale
// together with ReportQuantiles.
func Estimate(ctx context.Context, sample []float64) (*model.ImpactDistribution, error) {
	logger := utils.GetLogger(ctx)

	if len(sample) < MinEstimatePointCnt {
		return nil, fmt.Errorf("%w: %d point(s), need at least %d",
			common.ErrorInsufficientSampleSize, len(sample), MinEstimatePointCnt)
	}

	k, err := NewKDEUnivariate(sample, &model.Clip{Lower: ImpactLowerBound, Upper: ImpactUpperBound})
	if err != nil {
		return nil, err
	}

	density, bw, err := k.Kdensity()
	if err != nil {
		return nil, err
	}

	quantiles := make([]model.QuantileValue, 0, len(ReportQuantiles))
	for _, p := range ReportQuantiles {
		q, err := k.Quantile(p)
		if err != nil {
			logger.Error("kde Quantile failed", zap.Error(err), zap.Float64("p", p))
			continue
		}
		q.Value = utils.FormatFloat(q.Value, 3)
		quantiles = append(quantiles, *q)
	}

	return &model.ImpactDistribution{
		Bandwidth: bw,
		Density:   density,
		Quantiles: quantiles,
	}, nil
}
