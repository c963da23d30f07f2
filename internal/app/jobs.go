package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stockpilehq/stockpile/internal/domain"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@hourly", func() {
		a.SchedStatusRepairTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedSummaryTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedStatusRepairTask rewrites any stored status that no longer
// matches its stock quantity. Status is derived data; rows can only
// drift through out-of-band writes, but the sweep keeps the invariant
// observable either way.
func (a *Application) SchedStatusRepairTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	result := a.gormDB.Model(&domain.Product{}).
		Where("stock = 0 AND status <> ?", domain.StatusOutOfStock).
		Update("status", domain.StatusOutOfStock)
	repaired := result.RowsAffected
	if result.Error != nil {
		zap.L().Error("status repair failed", zap.Error(result.Error))
		return
	}

	result = a.gormDB.Model(&domain.Product{}).
		Where("stock > 0 AND status <> ?", domain.StatusInStock).
		Update("status", domain.StatusInStock)
	if result.Error != nil {
		zap.L().Error("status repair failed", zap.Error(result.Error))
		return
	}
	repaired += result.RowsAffected

	if repaired > 0 {
		zap.L().Warn("repaired drifted product status", zap.Int64("rows", repaired))
	}
}

// SchedSummaryTask logs a daily snapshot of catalog stock figures.
func (a *Application) SchedSummaryTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	summary, err := a.inventory.Summarize(context.Background())
	if err != nil {
		zap.L().Error("inventory summary failed", zap.Error(err))
		return
	}
	zap.L().Info("inventory summary",
		zap.Int("total_products", summary.TotalProducts),
		zap.Int("total_stock", summary.TotalStock),
		zap.Int("out_of_stock", summary.OutOfStock),
		zap.Float64("mean_stock", summary.MeanStock),
		zap.Float64("median_stock", summary.MedianStock))
}
