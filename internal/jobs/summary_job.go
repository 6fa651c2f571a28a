package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"krua/internal/domain"
	"krua/internal/ledger"
)

type WeeklySummaryUseCase interface {
	Summarize(ctx context.Context) (*domain.WeeklySummary, error)
}

type LedgerPublisher interface {
	Publish(row ledger.Row)
}

// SummaryJob periodically computes the running weekly summary and ships it
// to the ledger. An empty cron spec leaves the job disabled.
type SummaryJob struct {
	summary  WeeklySummaryUseCase
	notifier LedgerPublisher
	cron     *cron.Cron
	spec     string
	logger   *zap.Logger
}

func NewSummaryJob(summary WeeklySummaryUseCase, notifier LedgerPublisher, spec string, logger *zap.Logger) *SummaryJob {
	return &SummaryJob{
		summary:  summary,
		notifier: notifier,
		cron:     cron.New(),
		spec:     spec,
		logger:   logger,
	}
}

func (j *SummaryJob) Start() error {
	if j.spec == "" {
		j.logger.Info("summary job disabled")
		return nil
	}

	_, err := j.cron.AddFunc(j.spec, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("summary job started", zap.String("spec", j.spec))
	return nil
}

// Stop blocks until any in-flight run has finished, so the notifier can be
// closed safely afterwards.
func (j *SummaryJob) Stop() {
	if j.spec == "" {
		return
	}
	<-j.cron.Stop().Done()
	j.logger.Info("summary job stopped")
}

func (j *SummaryJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary, err := j.summary.Summarize(ctx)
	if err != nil {
		j.logger.Error("summary job failed", zap.Error(err))
		return
	}

	meat, veg, revenue := summary.MeatTotal, summary.VegTotal, summary.RevenueTotal
	start, end := summary.WindowStart, summary.WindowEnd
	j.notifier.Publish(ledger.Row{
		Kind:         ledger.KindWeeklySummary,
		MeatTotal:    &meat,
		VegTotal:     &veg,
		RevenueTotal: &revenue,
		WindowStart:  &start,
		WindowEnd:    &end,
		RecordedAt:   time.Now(),
	})

	j.logger.Info("weekly summary published",
		zap.String("meatTotal", meat.String()),
		zap.String("vegTotal", veg.String()),
		zap.String("revenueTotal", revenue.String()),
	)
}
