package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BalanceDirection describes who owes whom for a signed balance.
type BalanceDirection string

const (
	BalanceToReceive BalanceDirection = "to_receive"
	BalanceToPay     BalanceDirection = "to_pay"
	BalanceSettled   BalanceDirection = "settled"
)

// DirectionOf classifies a signed balance. Positive means the party owes the
// business, negative means the business owes the party.
func DirectionOf(balance decimal.Decimal) BalanceDirection {
	switch balance.Sign() {
	case 1:
		return BalanceToReceive
	case -1:
		return BalanceToPay
	default:
		return BalanceSettled
	}
}

// Party is a customer or supplier the business trades with.
// Balance is derived from the party's material and financial transactions
// and is only written by the ledger services.
type Party struct {
	Base
	Name    string          `gorm:"not null" json:"name"`
	Contact string          `json:"contact"`
	Balance decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"balance"`

	BalanceDirection BalanceDirection `gorm:"-" json:"balance_direction"`
}

// SetBalance stores a recomputed balance and refreshes its direction.
func (p *Party) SetBalance(balance decimal.Decimal) {
	p.Balance = balance
	p.BalanceDirection = DirectionOf(balance)
}

// AfterFind fills the derived balance direction.
func (p *Party) AfterFind(tx *gorm.DB) error {
	p.BalanceDirection = DirectionOf(p.Balance)
	return nil
}
