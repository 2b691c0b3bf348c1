package analysis

import (
	"context"
	"fmt"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/config"
	"github.com/uyouii/automation-impact/dataset"
	"github.com/uyouii/automation-impact/inference"
	"github.com/uyouii/automation-impact/model"
	"github.com/uyouii/automation-impact/regression"
)

// Analyzer applies the statistics packages to dataset snapshots. It holds
// no state besides its settings and is safe for concurrent use.
type Analyzer struct {
	settings config.StatsConfig
	// use Student's pooled test instead of Welch's
	EqualVariance bool
}

func NewAnalyzer(settings config.StatsConfig) *Analyzer {
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	if settings.Encoding == "" {
		settings.Encoding = config.OneHotEncoding
	}
	return &Analyzer{settings: settings}
}

func (a *Analyzer) Settings() config.StatsConfig {
	return a.settings
}

// SectorInterval estimates the mean impact of the sector name resolves to,
// see Snapshot.LookupSector. level 0 uses the configured confidence level.
func (a *Analyzer) SectorInterval(ctx context.Context, snap *dataset.Snapshot, name string, level float64) (*model.ConfidenceInterval, error) {
	sector, ok := snap.LookupSector(name)
	if !ok {
		return nil, unknownSector(name)
	}
	if level == 0 {
		level = a.settings.ConfidenceLevel
	}
	in, _ := snap.Partition(sector)
	return inference.ConfidenceInterval(in, level)
}

// SectorTest compares the impact of the sector name resolves to with the
// impact of every other sector. alpha 0 uses the configured significance level.
func (a *Analyzer) SectorTest(ctx context.Context, snap *dataset.Snapshot, name string, alpha float64) (*model.SectorComparison, error) {
	sector, ok := snap.LookupSector(name)
	if !ok {
		return nil, unknownSector(name)
	}
	if alpha == 0 {
		alpha = a.settings.Alpha
	}
	in, out := snap.Partition(sector)
	res, err := inference.TwoSampleTestWith(in, out, alpha, a.EqualVariance)
	if err != nil {
		return nil, err
	}

	direction := model.Equal
	switch {
	case res.MeanA > res.MeanB:
		direction = model.Higher
	case res.MeanA < res.MeanB:
		direction = model.Lower
	}

	return &model.SectorComparison{
		Sector:      sector,
		Test:        *res,
		Direction:   direction,
		Significant: res.Significant(),
	}, nil
}

// RegionRegression explains impact by region. An empty encoding uses the
// configured one. The ANOVA is best effort and reports its error inline.
func (a *Analyzer) RegionRegression(ctx context.Context, snap *dataset.Snapshot, encoding config.Encoding) (*model.RegionRegression, error) {
	if encoding == "" {
		encoding = a.settings.Encoding
	}
	regions, impacts := snap.Column(dataset.RegionOf)

	res := &model.RegionRegression{Encoding: string(encoding)}
	switch encoding {
	case config.OrdinalEncoding:
		fit, err := regression.FitOrdinal(regions, impacts)
		if err != nil {
			return nil, err
		}
		res.Ordinal = fit
	case config.OneHotEncoding:
		fit, err := regression.FitCategorical(regions, impacts)
		if err != nil {
			return nil, err
		}
		res.Categorical = fit
	default:
		return nil, fmt.Errorf("%w: unknown encoding %q", common.ErrorInvalidValue, encoding)
	}

	anova, err := regression.OneWayANOVA(regions, impacts)
	if err != nil {
		res.AnovaError = err.Error()
	} else {
		res.Anova = anova
	}
	return res, nil
}

// unknownSector matches both ErrorUnknownSector and ErrorEmptySample, a
// sector without records is an empty sample.
func unknownSector(sector string) error {
	return fmt.Errorf("%w: %w: %q", common.ErrorUnknownSector, common.ErrorEmptySample, sector)
}
