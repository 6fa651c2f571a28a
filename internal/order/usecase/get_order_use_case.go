package usecase

import (
	"context"

	"go.uber.org/zap"

	"krua/internal/domain"
)

type GetOrderUseCase struct {
	repo   OrderRepository
	logger *zap.Logger
}

func NewGetOrderUseCase(repo OrderRepository, logger *zap.Logger) *GetOrderUseCase {
	return &GetOrderUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetOrderUseCase) GetByCode(ctx context.Context, code string) (*domain.Order, error) {
	return uc.repo.FindByCode(ctx, NormalizeCode(code))
}
