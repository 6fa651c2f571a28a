package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"krua/internal/domain"
	"krua/internal/dto"
	apperrors "krua/internal/errors"
	"krua/internal/ledger"
)

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByCode(ctx context.Context, code string) (*domain.Order, error)
}

type CodeAllocator interface {
	Allocate(ctx context.Context) (string, error)
}

type LedgerPublisher interface {
	Publish(row ledger.Row)
}

type CreateOrderUseCase struct {
	repo             OrderRepository
	allocator        CodeAllocator
	ledger           LedgerPublisher
	logger           *zap.Logger
	maxAllocAttempts int
}

func NewCreateOrderUseCase(
	repo OrderRepository,
	allocator CodeAllocator,
	ledgerPublisher LedgerPublisher,
	logger *zap.Logger,
	maxAllocAttempts int,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		repo:             repo,
		allocator:        allocator,
		ledger:           ledgerPublisher,
		logger:           logger,
		maxAllocAttempts: maxAllocAttempts,
	}
}

// Create validates the request, allocates a code when the caller supplied
// none, and persists the order in one insert. A duplicate-key failure on a
// generated code triggers re-allocation, bounded by the same attempt cap as
// allocation itself; a duplicate on a caller-supplied code surfaces as-is.
func (uc *CreateOrderUseCase) Create(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.OrderStatusProcessing
	}

	items := make([]domain.OrderLineItem, len(req.Items))
	for i, item := range req.Items {
		unitPrice := item.UnitPrice
		items[i] = domain.OrderLineItem{
			Name:      strings.TrimSpace(item.Name),
			Category:  item.Category,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			LineTotal: unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
	}

	order := domain.Order{
		Code:         NormalizeCode(req.Code),
		CustomerNote: strings.TrimSpace(req.CustomerNote),
		PickupTime:   req.PickupTime,
		LineItems:    items,
		TotalAmount:  req.TotalAmount,
		Status:       status,
	}
	callerSupplied := order.Code != ""

	for attempt := 1; attempt <= uc.maxAllocAttempts; attempt++ {
		if order.Code == "" {
			code, err := uc.allocator.Allocate(ctx)
			if err != nil {
				return nil, err
			}
			order.Code = code
		}

		created, err := uc.repo.Insert(ctx, &order)
		if err == nil {
			uc.logger.Info("order created",
				zap.String("code", created.Code),
				zap.String("status", created.Status),
				zap.Int("itemCount", len(created.LineItems)),
				zap.String("totalAmount", created.TotalAmount.String()),
			)
			uc.publishCreated(created)
			return created, nil
		}

		if _, ok := apperrors.IsDuplicateKeyError(err); ok && !callerSupplied {
			uc.logger.Warn("generated code collided on insert, re-allocating",
				zap.String("code", order.Code),
				zap.Int("attempt", attempt),
			)
			order.Code = ""
			continue
		}

		return nil, err
	}

	return nil, apperrors.NewAllocationExhaustedError("insert kept colliding on generated codes", uc.maxAllocAttempts)
}

func (uc *CreateOrderUseCase) publishCreated(order *domain.Order) {
	total := order.TotalAmount
	uc.ledger.Publish(ledger.Row{
		Kind:         ledger.KindOrderCreated,
		Code:         order.Code,
		CustomerNote: order.CustomerNote,
		PickupTime:   order.PickupTime,
		Status:       order.Status,
		TotalAmount:  &total,
		RecordedAt:   time.Now(),
	})
}

func validateCreateRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.CustomerNote) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerNote",
			Message: "customerNote is required",
		})
	}

	if req.PickupTime == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "pickupTime",
			Message: "pickupTime is required",
		})
	} else if _, err := time.Parse("15:04", req.PickupTime); err != nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "pickupTime",
			Message: "pickupTime must be in HH:MM format",
		})
	}

	if req.Code != "" && !validCodeShape(NormalizeCode(req.Code)) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "code",
			Message: "code must be 8 characters from 0-9A-Z",
		})
	}

	if req.Status != "" && !domain.IsValidStatus(req.Status) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of " + strings.Join(domain.OrderStatuses, ", "),
		})
	}

	if req.TotalAmount.IsNegative() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "totalAmount",
			Message: "totalAmount must be non-negative",
		})
	}

	for idx, item := range req.Items {
		field := "items[" + strconv.Itoa(idx) + "]"

		if strings.TrimSpace(item.Name) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".name",
				Message: "name is required",
			})
		}

		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".quantity",
				Message: "quantity must be a positive integer",
			})
		}

		if item.UnitPrice.IsNegative() {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".unitPrice",
				Message: "unitPrice must be non-negative",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func validCodeShape(code string) bool {
	if len(code) != domain.CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(domain.CodeAlphabet, rune(code[i])) {
			return false
		}
	}
	return true
}

// NormalizeCode uppercases and trims a code for lookup and storage. Codes
// are case-insensitive on every entry point.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
