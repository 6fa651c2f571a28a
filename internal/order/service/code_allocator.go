package service

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"krua/internal/domain"
	apperrors "krua/internal/errors"
)

type CodeRepository interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// CodeAllocator hands out order codes that are absent from the repository at
// allocation time. The existence-check-then-insert sequence is a known race
// under concurrent creators; the unique index on the code column is the
// authoritative guard, and the create path handles the resulting duplicate.
type CodeAllocator struct {
	repo        CodeRepository
	logger      *zap.Logger
	maxAttempts int
}

func NewCodeAllocator(repo CodeRepository, logger *zap.Logger, maxAttempts int) *CodeAllocator {
	return &CodeAllocator{
		repo:        repo,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// Allocate draws candidates until one is free or the attempt cap is hit.
// With a 36^8 keyspace a collision is vanishingly unlikely; exhausting the
// cap in practice means the existence check itself keeps failing.
func (a *CodeAllocator) Allocate(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		code := randomCode()

		exists, err := a.repo.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}

		a.logger.Warn("order code collision, retrying",
			zap.String("code", code),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", a.maxAttempts),
		)
	}

	return "", apperrors.NewAllocationExhaustedError("could not allocate a unique order code", a.maxAttempts)
}

func randomCode() string {
	buf := make([]byte, domain.CodeLength)
	for i := range buf {
		buf[i] = domain.CodeAlphabet[rand.Intn(len(domain.CodeAlphabet))]
	}
	return string(buf)
}
