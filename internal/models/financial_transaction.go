package models

import "github.com/shopspring/decimal"

// PaymentType is the direction of a manual money movement.
type PaymentType string

const (
	PaymentTypePayment PaymentType = "payment"
	PaymentTypeReceipt PaymentType = "receipt"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	return t == PaymentTypePayment || t == PaymentTypeReceipt
}

// PaymentMethod is how money changed hands.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodBank PaymentMethod = "bank"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI, PaymentMethodBank:
		return true
	}
	return false
}

// FinancialTransaction is a manually recorded payment or receipt.
// Amount is always positive; the sign applied to the balance comes from
// PaymentType.
type FinancialTransaction struct {
	Base
	PartyID       string          `gorm:"type:uuid;not null;index" json:"party_id"`
	PartyName     string          `gorm:"not null" json:"party_name"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	PaymentType   PaymentType     `gorm:"not null" json:"payment_type"`
	PaymentMethod PaymentMethod   `gorm:"not null;default:'cash'" json:"payment_method"`
	Description   string          `json:"description"`
}

// SignedAmount returns the contribution of the transaction to the party
// balance: receipts add, payments subtract.
func (f FinancialTransaction) SignedAmount() decimal.Decimal {
	if f.PaymentType == PaymentTypePayment {
		return f.Amount.Neg()
	}
	return f.Amount
}
