package analysis

import (
	"context"
	"fmt"

	"github.com/uyouii/automation-impact/dataset"
	"github.com/uyouii/automation-impact/describe"
	"github.com/uyouii/automation-impact/kde"
	"github.com/uyouii/automation-impact/model"
	"github.com/uyouii/automation-impact/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Report computes the overall summary, the sector ranking, the statistics of
// every sector and the region regression. Sectors are analyzed concurrently;
// a statistic that fails for one sector is recorded in that sector's entry and
// never fails the report. Only an empty dataset or a cancelled ctx does.
func (a *Analyzer) Report(ctx context.Context, snap *dataset.Snapshot) (*model.Report, error) {
	logger := utils.GetLogger(ctx)

	overall, err := describe.Summarize(snap.Impacts())
	if err != nil {
		logger.Error("summarize dataset failed", zap.String("snapshot", snap.ID), zap.Error(err))
		return nil, err
	}

	sectors, impacts := snap.Column(dataset.SectorOf)
	ranking, err := describe.GroupMeans(sectors, impacts)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		Snapshot:        snap.Info(),
		Overall:         *overall,
		Ranking:         ranking,
		Sectors:         make([]model.SectorReport, len(ranking)),
		ConfidenceLevel: a.settings.ConfidenceLevel,
		Alpha:           a.settings.Alpha,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.settings.Workers)
	for i, group := range ranking {
		i, sector := i, group.Key
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Sectors[i] = a.sectorReport(gctx, snap, sector)
			return nil
		})
	}

	regionRes, err := a.RegionRegression(ctx, snap, "")
	if err != nil {
		logger.Info("region regression skipped", zap.Error(err))
		report.RegressionError = err.Error()
	} else {
		report.Regression = regionRes
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("report computed", zap.String("snapshot", snap.ID),
		zap.Int("sectors", len(report.Sectors)), zap.Float64("mean", overall.Mean))
	return report, nil
}

func (a *Analyzer) sectorReport(ctx context.Context, snap *dataset.Snapshot, sector string) (res model.SectorReport) {
	logger := utils.GetLogger(ctx)
	res.Sector = sector

	defer func() {
		if err := recover(); err != nil {
			logger.Error("sectorReport recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()), zap.String("sector", sector))
			res = model.SectorReport{Sector: sector, IntervalError: fmt.Sprintf("panic: %v", err)}
		}
	}()

	in, _ := snap.Partition(sector)
	if summary, err := describe.Summarize(in); err == nil {
		res.Summary = summary
	}

	if interval, err := a.SectorInterval(ctx, snap, sector, 0); err != nil {
		logger.Debug("sector interval skipped", zap.String("sector", sector), zap.Error(err))
		res.IntervalError = err.Error()
	} else {
		res.Interval = interval
	}

	if comparison, err := a.SectorTest(ctx, snap, sector, 0); err != nil {
		logger.Debug("sector test skipped", zap.String("sector", sector), zap.Error(err))
		res.ComparisonError = err.Error()
	} else {
		res.Comparison = comparison
	}

	if dist, err := kde.Estimate(ctx, in); err != nil {
		res.DistributionError = err.Error()
	} else {
		res.Distribution = dist
	}
	return res
}
