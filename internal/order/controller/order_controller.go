package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"krua/internal/domain"
	"krua/internal/dto"
	apperrors "krua/internal/errors"
)

type CreateOrderUseCase interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)
}

type GetOrderUseCase interface {
	GetByCode(ctx context.Context, code string) (*domain.Order, error)
}

type ListOrdersUseCase interface {
	List(ctx context.Context, status string, day *time.Time) ([]domain.Order, error)
}

type UpdateStatusUseCase interface {
	Update(ctx context.Context, code string, status string) (*domain.Order, error)
}

type WeeklySummaryUseCase interface {
	Summarize(ctx context.Context) (*domain.WeeklySummary, error)
}

type OrderController struct {
	create  CreateOrderUseCase
	get     GetOrderUseCase
	list    ListOrdersUseCase
	update  UpdateStatusUseCase
	summary WeeklySummaryUseCase
	logger  *zap.Logger
}

func NewOrderController(
	create CreateOrderUseCase,
	get GetOrderUseCase,
	list ListOrdersUseCase,
	update UpdateStatusUseCase,
	summary WeeklySummaryUseCase,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		create:  create,
		get:     get,
		list:    list,
		update:  update,
		summary: summary,
		logger:  logger,
	}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.create.Create(r.Context(), req)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.CreateOrderResponse{
		Message: "Order placed successfully",
		Code:    order.Code,
		Order:   dto.NewOrderResponse(order),
	})
}

func (c *OrderController) GetByCode(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	code := chi.URLParam(r, "code")

	order, err := c.get.GetByCode(r.Context(), code)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.StatusCheckResponse{
		Code:         order.Code,
		Status:       order.Status,
		CustomerNote: order.CustomerNote,
		PickupTime:   order.PickupTime,
		TotalAmount:  order.TotalAmount,
		CreatedAt:    order.CreatedAt,
	})
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	status := r.URL.Query().Get("status")

	var day *time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			logger.Warn("invalid date filter", zap.String("date", dateStr), zap.Error(err))
			c.writeValidationError(w, "invalid date filter", apperrors.ValidationDetail{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
			return
		}
		day = &parsed
	}

	orders, err := c.list.List(r.Context(), status, day)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = dto.NewOrderResponse(&orders[i])
	}

	c.writeJSON(w, http.StatusOK, responses)
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	code := chi.URLParam(r, "code")

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Status == "" {
		c.writeValidationError(w, "status is required", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status field is required for update",
		})
		return
	}

	order, err := c.update.Update(r.Context(), code, req.Status)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.UpdateStatusResponse{
		Message: "Order status updated successfully",
		Order:   dto.NewOrderResponse(order),
	})
}

func (c *OrderController) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	summary, err := c.summary.Summarize(r.Context())
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.SummaryResponse{
		MeatTotal:    summary.MeatTotal,
		VegTotal:     summary.VegTotal,
		RevenueTotal: summary.RevenueTotal,
		WindowStart:  summary.WindowStart,
		WindowEnd:    summary.WindowEnd,
	})
}

func (c *OrderController) handleUseCaseError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsInvalidStatusError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "INVALID_STATUS",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsDuplicateKeyError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "DUPLICATE_KEY",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsAllocationExhaustedError(err); ok {
		logger.Error("code allocation exhausted", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "ALLOCATION_EXHAUSTED",
			"message": "could not allocate a unique order code",
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
