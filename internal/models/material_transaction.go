package models

import "github.com/shopspring/decimal"

// MaterialTransaction is the ledger entry generated from an order's value.
// Amount is positive for sales and negative for purchases.
type MaterialTransaction struct {
	Base
	PartyID     string          `gorm:"type:uuid;not null;index" json:"party_id"`
	PartyName   string          `gorm:"not null" json:"party_name"`
	OrderID     string          `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	OrderType   OrderType       `gorm:"not null" json:"order_type"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
}
