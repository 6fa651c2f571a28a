package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"krua/internal/config"
	"krua/internal/domain"
)

type SummaryRepository interface {
	FindInWindow(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error)
}

// SummaryService reduces a window of orders into per-bucket revenue totals.
// Which statuses qualify and where total revenue comes from are policy,
// fixed at construction from configuration.
type SummaryService struct {
	repo   SummaryRepository
	logger *zap.Logger
	policy config.SummaryConfig
}

func NewSummaryService(repo SummaryRepository, logger *zap.Logger, policy config.SummaryConfig) *SummaryService {
	return &SummaryService{
		repo:   repo,
		logger: logger,
		policy: policy,
	}
}

// WeekStart returns Monday 00:00:00 of the week containing now, local time.
func WeekStart(now time.Time) time.Time {
	// time.Weekday has Sunday=0, so Monday's offset is (weekday+6) mod 7.
	offset := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
}

// SummarizeWeek aggregates the current calendar week up to now.
func (s *SummaryService) SummarizeWeek(ctx context.Context, now time.Time) (*domain.WeeklySummary, error) {
	return s.Summarize(ctx, WeekStart(now), now)
}

// Summarize scans [start, end) and accumulates per-item revenue into the
// meat and vegetable buckets. Line values are always recomputed from
// quantity and unit price; a stored line total is never trusted over the
// recomputation. An empty window yields zeroed totals, not an error.
func (s *SummaryService) Summarize(ctx context.Context, start, end time.Time) (*domain.WeeklySummary, error) {
	orders, err := s.repo.FindInWindow(ctx, start, end, s.policy.Statuses)
	if err != nil {
		return nil, err
	}

	summary := &domain.WeeklySummary{
		MeatTotal:    decimal.Zero,
		VegTotal:     decimal.Zero,
		RevenueTotal: decimal.Zero,
		WindowStart:  start,
		WindowEnd:    end,
	}

	for _, order := range orders {
		for _, item := range order.LineItems {
			value := item.ComputedTotal()
			switch domain.Classify(item) {
			case domain.CategoryMeat:
				summary.MeatTotal = summary.MeatTotal.Add(value)
			case domain.CategoryVeg:
				summary.VegTotal = summary.VegTotal.Add(value)
			}
			// Items with another explicit category land in neither bucket.
		}

		if s.policy.RevenueSource == config.RevenueSourceOrders {
			summary.RevenueTotal = summary.RevenueTotal.Add(order.TotalAmount)
		}
	}

	if s.policy.RevenueSource == config.RevenueSourceBuckets {
		summary.RevenueTotal = summary.MeatTotal.Add(summary.VegTotal)
	}

	s.logger.Debug("summary computed",
		zap.Int("orderCount", len(orders)),
		zap.String("meatTotal", summary.MeatTotal.String()),
		zap.String("vegTotal", summary.VegTotal.String()),
		zap.String("revenueTotal", summary.RevenueTotal.String()),
	)

	return summary, nil
}
