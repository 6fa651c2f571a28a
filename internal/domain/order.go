package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           uint
	Code         string
	CustomerNote string
	PickupTime   string
	LineItems    []OrderLineItem
	TotalAmount  decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	OrderStatusProcessing = "Processing"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

// OrderStatuses is the closed set of statuses an order may hold. Any member
// is reachable from any other; the only guard is membership in this set.
var OrderStatuses = []string{
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func IsValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Public order codes are 8 characters drawn from digits and uppercase letters.
const (
	CodeLength   = 8
	CodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)
