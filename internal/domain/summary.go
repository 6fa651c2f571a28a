package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklySummary is a point-in-time revenue report. It is recomputed on every
// request and never persisted.
type WeeklySummary struct {
	MeatTotal    decimal.Decimal
	VegTotal     decimal.Decimal
	RevenueTotal decimal.Decimal
	WindowStart  time.Time
	WindowEnd    time.Time
}
