package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"krua/internal/domain"
	"krua/internal/order/repository"
)

type ListOrdersRepository interface {
	FindMany(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error)
}

type ListOrdersUseCase struct {
	repo   ListOrdersRepository
	logger *zap.Logger
}

func NewListOrdersUseCase(repo ListOrdersRepository, logger *zap.Logger) *ListOrdersUseCase {
	return &ListOrdersUseCase{
		repo:   repo,
		logger: logger,
	}
}

// List returns orders newest first, optionally narrowed to an exact status
// and to a single calendar day of creation.
func (uc *ListOrdersUseCase) List(ctx context.Context, status string, day *time.Time) ([]domain.Order, error) {
	return uc.repo.FindMany(ctx, repository.ListFilter{
		Status: status,
		Day:    day,
	})
}
