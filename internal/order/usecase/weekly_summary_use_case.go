package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"krua/internal/domain"
)

type SummaryService interface {
	SummarizeWeek(ctx context.Context, now time.Time) (*domain.WeeklySummary, error)
}

type WeeklySummaryUseCase struct {
	summary SummaryService
	logger  *zap.Logger
	now     func() time.Time
}

func NewWeeklySummaryUseCase(summary SummaryService, logger *zap.Logger) *WeeklySummaryUseCase {
	return &WeeklySummaryUseCase{
		summary: summary,
		logger:  logger,
		now:     time.Now,
	}
}

// Summarize reports the current calendar week, Monday 00:00 local time up
// to the moment of the call.
func (uc *WeeklySummaryUseCase) Summarize(ctx context.Context) (*domain.WeeklySummary, error) {
	return uc.summary.SummarizeWeek(ctx, uc.now())
}
