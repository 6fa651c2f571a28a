package usecase

import (
	"context"

	"go.uber.org/zap"

	"krua/internal/domain"
	apperrors "krua/internal/errors"
)

type UpdateStatusRepository interface {
	UpdateStatus(ctx context.Context, code string, status string) (*domain.Order, error)
}

type UpdateStatusUseCase struct {
	repo   UpdateStatusRepository
	logger *zap.Logger
}

func NewUpdateStatusUseCase(repo UpdateStatusRepository, logger *zap.Logger) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Update applies a status transition. The guard is membership in the closed
// status set, nothing more: any member is reachable from any other, and two
// concurrent updates race with last-writer-wins.
func (uc *UpdateStatusUseCase) Update(ctx context.Context, code string, status string) (*domain.Order, error) {
	if !domain.IsValidStatus(status) {
		return nil, apperrors.NewInvalidStatusError(status, domain.OrderStatuses)
	}

	updated, err := uc.repo.UpdateStatus(ctx, NormalizeCode(code), status)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order status updated",
		zap.String("code", updated.Code),
		zap.String("status", updated.Status),
	)

	return updated, nil
}
