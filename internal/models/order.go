package models

import (
	"github.com/shopspring/decimal"
)

// OrderType represents the direction of an order
type OrderType string

const (
	OrderTypeSale     OrderType = "sale"
	OrderTypePurchase OrderType = "purchase"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == OrderTypeSale || t == OrderTypePurchase
}

// OrderStatus is a stage of the order lifecycle.
type OrderStatus string

const (
	OrderStatusStart     OrderStatus = "start"
	OrderStatusInProcess OrderStatus = "inprocess"
	OrderStatusCompleted OrderStatus = "completed"
)

// nextStatus maps each status to the only status it may move to.
var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusStart:     OrderStatusInProcess,
	OrderStatusInProcess: OrderStatusCompleted,
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusStart, OrderStatusInProcess, OrderStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to target.
// Completed is terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	next, ok := nextStatus[s]
	return ok && next == target
}

// IsActive reports whether the order still takes part in manual ordering.
func (s OrderStatus) IsActive() bool {
	return s != OrderStatusCompleted
}

// Order is a sale to or purchase from a party.
type Order struct {
	Base
	PartyID          string          `gorm:"type:uuid;not null;index:idx_orders_party_type" json:"party_id"`
	PartyName        string          `gorm:"not null" json:"party_name"`
	OrderType        OrderType       `gorm:"not null;index:idx_orders_party_type" json:"order_type"`
	LineItems        []OrderLineItem `gorm:"foreignKey:OrderID" json:"line_items"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"total_price"`
	TotalWeight      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"total_weight"`
	Status           OrderStatus     `gorm:"not null;default:'start';index" json:"status"`
	Priority         int             `gorm:"not null;default:0" json:"priority"`
	ReferenceOrderID *string         `gorm:"type:uuid" json:"reference_order_id,omitempty"`
}

// OrderLineItem is one product line of an order. Name, price and weight are
// snapshots of the product at order time.
type OrderLineItem struct {
	Base
	OrderID     string          `gorm:"type:uuid;not null;index" json:"order_id"`
	Position    int             `gorm:"not null" json:"position"`
	ProductID   string          `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string          `gorm:"not null" json:"product_name"`
	Quantity    decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"price"`
	Weight      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"weight"`
}

// LineTotal returns quantity × price for the line, rounded to the column scale.
func (li OrderLineItem) LineTotal() decimal.Decimal {
	return li.Quantity.Mul(li.Price).Round(ColumnScale)
}

// LineWeight returns quantity × weight for the line, rounded to the column
// scale.
func (li OrderLineItem) LineWeight() decimal.Decimal {
	return li.Quantity.Mul(li.Weight).Round(ColumnScale)
}

// RecalculateTotals sets TotalPrice and TotalWeight from the rounded line
// totals, so the totals are exactly what the database stores.
func (o *Order) RecalculateTotals() {
	price := decimal.Zero
	weight := decimal.Zero
	for _, li := range o.LineItems {
		price = price.Add(li.LineTotal())
		weight = weight.Add(li.LineWeight())
	}
	o.TotalPrice = price
	o.TotalWeight = weight
}

// ShortID returns the leading segment of the order ID for display.
func (o *Order) ShortID() string {
	if len(o.ID) > 8 {
		return o.ID[:8]
	}
	return o.ID
}
