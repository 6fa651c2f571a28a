package domain

import "github.com/shopspring/decimal"

type OrderLineItem struct {
	ID        uint
	OrderID   uint
	Name      string
	Category  string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

const (
	CategoryMeat = "Meat"
	CategoryVeg  = "Veg"
)

// ComputedTotal recomputes the line value from quantity and unit price.
// A stored LineTotal can go stale; callers that aggregate must use this.
func (i OrderLineItem) ComputedTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
