package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"krua/internal/domain"
	apperrors "krua/internal/errors"
	"krua/internal/order/repository"
)

func TestGetByCode_NormalizesBeforeLookup(t *testing.T) {
	ctx := context.Background()

	var gotCode string
	repo := &mockOrderRepository{
		FindByCodeFunc: func(ctx context.Context, code string) (*domain.Order, error) {
			gotCode = code
			return &domain.Order{Code: code}, nil
		},
	}

	uc := NewGetOrderUseCase(repo, zap.NewNop())

	if _, err := uc.GetByCode(ctx, "1a2b3c4d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCode != "1A2B3C4D" {
		t.Errorf("expected uppercase lookup, got %q", gotCode)
	}
}

func TestGetByCode_NotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		FindByCodeFunc: func(ctx context.Context, code string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order with code " + code + " not found")
		},
	}

	uc := NewGetOrderUseCase(repo, zap.NewNop())

	_, err := uc.GetByCode(ctx, "MISSING1")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

type mockListOrdersRepository struct {
	FindManyFunc func(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error)
}

func (m *mockListOrdersRepository) FindMany(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error) {
	return m.FindManyFunc(ctx, filter)
}

func TestList_PassesFiltersThrough(t *testing.T) {
	ctx := context.Background()

	var gotFilter repository.ListFilter
	repo := &mockListOrdersRepository{
		FindManyFunc: func(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error) {
			gotFilter = filter
			return []domain.Order{{Code: "1A2B3C4D"}}, nil
		},
	}

	uc := NewListOrdersUseCase(repo, zap.NewNop())

	day := time.Date(2024, 1, 17, 0, 0, 0, 0, time.Local)
	orders, err := uc.List(ctx, domain.OrderStatusCompleted, &day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(orders) != 1 {
		t.Errorf("expected 1 order, got %d", len(orders))
	}
	if gotFilter.Status != domain.OrderStatusCompleted {
		t.Errorf("expected status filter passed through, got %q", gotFilter.Status)
	}
	if gotFilter.Day == nil || !gotFilter.Day.Equal(day) {
		t.Errorf("expected day filter passed through, got %v", gotFilter.Day)
	}
}

func TestList_NoFilters(t *testing.T) {
	ctx := context.Background()

	var gotFilter repository.ListFilter
	repo := &mockListOrdersRepository{
		FindManyFunc: func(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error) {
			gotFilter = filter
			return nil, nil
		},
	}

	uc := NewListOrdersUseCase(repo, zap.NewNop())

	orders, err := uc.List(ctx, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders != nil {
		t.Errorf("expected nil result for empty repository, got %v", orders)
	}
	if gotFilter.Status != "" || gotFilter.Day != nil {
		t.Errorf("expected zero filter, got %+v", gotFilter)
	}
}
