package models

import "github.com/shopspring/decimal"

// Product is reference data used to price and weigh order line items.
type Product struct {
	Base
	Name        string          `gorm:"not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"price"`
	Weight      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"weight"`
	Description string          `json:"description"`
}
