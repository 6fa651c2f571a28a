package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"krua/internal/config"
	"krua/internal/domain"
)

type mockSummaryRepository struct {
	FindInWindowFunc func(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error)
}

func (m *mockSummaryRepository) FindInWindow(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error) {
	return m.FindInWindowFunc(ctx, start, end, statuses)
}

func completedPolicy() config.SummaryConfig {
	return config.SummaryConfig{
		Statuses:      []string{domain.OrderStatusCompleted},
		RevenueSource: config.RevenueSourceBuckets,
	}
}

func TestWeekStart_MidWeek(t *testing.T) {
	// Wednesday 2024-01-17 belongs to the week starting Monday 2024-01-15.
	now := time.Date(2024, 1, 17, 14, 30, 45, 0, time.Local)

	got := WeekStart(now)
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	if !got.Equal(want) {
		t.Errorf("expected week start %v, got %v", want, got)
	}
}

func TestWeekStart_Sunday(t *testing.T) {
	// Sunday 2024-01-21 still belongs to the week of Monday 2024-01-15.
	now := time.Date(2024, 1, 21, 23, 59, 59, 0, time.Local)

	got := WeekStart(now)
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	if !got.Equal(want) {
		t.Errorf("expected week start %v, got %v", want, got)
	}
}

func TestWeekStart_Monday(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)

	got := WeekStart(now)
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	if !got.Equal(want) {
		t.Errorf("expected week start %v, got %v", want, got)
	}
}

func sampleOrders() []domain.Order {
	return []domain.Order{
		{
			Code:        "AAAA1111",
			Status:      domain.OrderStatusCompleted,
			TotalAmount: decimal.NewFromInt(140),
			LineItems: []domain.OrderLineItem{
				{Name: "กะเพราหมู", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
				{Name: "ผัดผัก", Quantity: 1, UnitPrice: decimal.NewFromInt(40)},
			},
		},
	}
}

func TestSummarize_HeuristicClassification(t *testing.T) {
	ctx := context.Background()

	repo := &mockSummaryRepository{
		FindInWindowFunc: func(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error) {
			return sampleOrders(), nil
		},
	}

	svc := NewSummaryService(repo, zap.NewNop(), completedPolicy())

	now := time.Date(2024, 1, 17, 12, 0, 0, 0, time.Local)
	summary, err := svc.SummarizeWeek(ctx, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.MeatTotal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected meat total 100, got %s", summary.MeatTotal)
	}
	if !summary.VegTotal.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected veg total 40, got %s", summary.VegTotal)
	}
	if !summary.RevenueTotal.Equal(decimal.NewFromInt(140)) {
		t.Errorf("expected revenue total 140, got %s", summary.RevenueTotal)
	}

	wantStart := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	if !summary.WindowStart.Equal(wantStart) {
		t.Errorf("expected window start %v, got %v", wantStart, summary.WindowStart)
	}
	if !summary.WindowEnd.Equal(now) {
		t.Errorf("expected window end %v, got %v", now, summary.WindowEnd)
	}
}

func TestSummarize_RecomputesStaleLineTotals(t *testing.T) {
	ctx := context.Background()

	orders := []domain.Order{
		{
			Status: domain.OrderStatusCompleted,
			LineItems: []domain.OrderLineItem{
				{
					Name:      "หมูทอด",
					Quantity:  3,
					UnitPrice: decimal.NewFromInt(20),
					LineTotal: decimal.NewFromInt(999), // stale
				},
			},
		},
	}

	repo := &mockSummaryRepository{
		FindInWindowFunc: func(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error) {
			return orders, nil
		},
	}

	svc := NewSummaryService(repo, zap.NewNop(), completedPolicy())

	summary, err := svc.SummarizeWeek(ctx, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.MeatTotal.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected recomputed meat total 60, got %s", summary.MeatTotal)
	}
}

func TestSummarize_RevenueFromStoredOrderTotals(t *testing.T) {
	ctx := context.Background()

	repo := &mockSummaryRepository{
		FindInWindowFunc: func(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error) {
			orders := sampleOrders()
			// Stored order total disagrees with the line items on purpose.
			orders[0].TotalAmount = decimal.NewFromInt(150)
			return orders, nil
		},
	}

	policy := completedPolicy()
	policy.RevenueSource = config.RevenueSourceOrders
	svc := NewSummaryService(repo, zap.NewNop(), policy)

	summary, err := svc.SummarizeWeek(ctx, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.RevenueTotal.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected revenue from stored totals 150, got %s", summary.RevenueTotal)
	}
	// Buckets still come from recomputed line values.
	if !summary.MeatTotal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected meat total 100, got %s", summary.MeatTotal)
	}
}

func TestSummarize_OtherCategoriesOutsideBuckets(t *testing.T) {
	ctx := context.Background()

	orders := []domain.Order{
		{
			Status: domain.OrderStatusCompleted,
			LineItems: []domain.OrderLineItem{
				{Name: "หมูปิ้ง", Category: domain.CategoryMeat, Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
				{Name: "น้ำเปล่า", Category: "Drink", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			},
		},
	}

	repo := &mockSummaryRepository{
		FindInWindowFunc: func(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error) {
			return orders, nil
		},
	}

	svc := NewSummaryService(repo, zap.NewNop(), completedPolicy())

	summary, err := svc.SummarizeWeek(ctx, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.MeatTotal.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected meat total 30, got %s", summary.MeatTotal)
	}
	if !summary.VegTotal.Equal(decimal.Zero) {
		t.Errorf("expected veg total 0, got %s", summary.VegTotal)
	}
	// Under the buckets revenue source the drink is excluded entirely.
	if !summary.RevenueTotal.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected revenue total 30, got %s", summary.RevenueTotal)
	}
}

func TestSummarize_EmptyWindowYieldsZeroes(t *testing.T) {
	ctx := context.Background()

	repo := &mockSummaryRepository{
		FindInWindowFunc: func(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error) {
			return nil, nil
		},
	}

	svc := NewSummaryService(repo, zap.NewNop(), completedPolicy())

	summary, err := svc.SummarizeWeek(ctx, time.Now())
	if err != nil {
		t.Fatalf("expected zeroed totals, got error: %v", err)
	}

	if !summary.MeatTotal.Equal(decimal.Zero) || !summary.VegTotal.Equal(decimal.Zero) || !summary.RevenueTotal.Equal(decimal.Zero) {
		t.Errorf("expected all totals zero, got meat=%s veg=%s revenue=%s",
			summary.MeatTotal, summary.VegTotal, summary.RevenueTotal)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	ctx := context.Background()

	repo := &mockSummaryRepository{
		FindInWindowFunc: func(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error) {
			return sampleOrders(), nil
		},
	}

	svc := NewSummaryService(repo, zap.NewNop(), completedPolicy())

	now := time.Date(2024, 1, 17, 12, 0, 0, 0, time.Local)
	first, err := svc.SummarizeWeek(ctx, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.SummarizeWeek(ctx, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.MeatTotal.Equal(second.MeatTotal) ||
		!first.VegTotal.Equal(second.VegTotal) ||
		!first.RevenueTotal.Equal(second.RevenueTotal) {
		t.Errorf("summaries differ across calls with no intervening writes")
	}
}

func TestSummarize_PassesPolicyStatusesToRepository(t *testing.T) {
	ctx := context.Background()

	var gotStatuses []string
	repo := &mockSummaryRepository{
		FindInWindowFunc: func(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error) {
			gotStatuses = statuses
			return nil, nil
		},
	}

	policy := config.SummaryConfig{
		Statuses:      []string{domain.OrderStatusCompleted, domain.OrderStatusProcessing},
		RevenueSource: config.RevenueSourceBuckets,
	}
	svc := NewSummaryService(repo, zap.NewNop(), policy)

	if _, err := svc.SummarizeWeek(ctx, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotStatuses) != 2 {
		t.Errorf("expected 2 statuses passed through, got %v", gotStatuses)
	}
}
