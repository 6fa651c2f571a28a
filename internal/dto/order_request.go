package dto

import "github.com/shopspring/decimal"

type CreateOrderRequest struct {
	// Code is normally left empty and allocated server-side.
	Code         string            `json:"code,omitempty"`
	CustomerNote string            `json:"customerNote"`
	PickupTime   string            `json:"pickupTime"`
	Status       string            `json:"status,omitempty"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	Items        []LineItemRequest `json:"items"`
}

type LineItemRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
