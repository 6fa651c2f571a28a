package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"krua/internal/domain"
)

type OrderResponse struct {
	Code         string             `json:"code"`
	CustomerNote string             `json:"customerNote"`
	PickupTime   string             `json:"pickupTime"`
	Items        []LineItemResponse `json:"items"`
	TotalAmount  decimal.Decimal    `json:"totalAmount"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type LineItemResponse struct {
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type CreateOrderResponse struct {
	Message string        `json:"message"`
	Code    string        `json:"code"`
	Order   OrderResponse `json:"order"`
}

// StatusCheckResponse is the trimmed view returned to customers looking up
// their order by code.
type StatusCheckResponse struct {
	Code         string          `json:"code"`
	Status       string          `json:"status"`
	CustomerNote string          `json:"customerNote"`
	PickupTime   string          `json:"pickupTime"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type UpdateStatusResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

type SummaryResponse struct {
	MeatTotal    decimal.Decimal `json:"meatTotal"`
	VegTotal     decimal.Decimal `json:"vegTotal"`
	RevenueTotal decimal.Decimal `json:"revenueTotal"`
	WindowStart  time.Time       `json:"windowStart"`
	WindowEnd    time.Time       `json:"windowEnd"`
}

func NewOrderResponse(order *domain.Order) OrderResponse {
	items := make([]LineItemResponse, len(order.LineItems))
	for i, item := range order.LineItems {
		items[i] = LineItemResponse{
			Name:      item.Name,
			Category:  item.Category,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
	}

	return OrderResponse{
		Code:         order.Code,
		CustomerNote: order.CustomerNote,
		PickupTime:   order.PickupTime,
		Items:        items,
		TotalAmount:  order.TotalAmount,
		Status:       order.Status,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}
