package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"ledgerbook/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestParty creates a party with a unique name and zero balance.
func CreateTestParty(t *testing.T, db *gorm.DB) *models.Party {
	t.Helper()

	party := &models.Party{
		Name:    fmt.Sprintf("Party %d", nextID()),
		Contact: "555-0100",
		Balance: decimal.Zero,
	}
	if err := db.Create(party).Error; err != nil {
		t.Fatalf("failed to create test party: %v", err)
	}
	party.SetBalance(party.Balance)
	return party
}

// CreateTestProduct creates a product with the given price and weight.
func CreateTestProduct(t *testing.T, db *gorm.DB, price, weight string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:   fmt.Sprintf("Product %d", nextID()),
		Price:  Dec(t, price),
		Weight: Dec(t, weight),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestOrder inserts an order row directly, bypassing the ledger.
// Use it to set up listing and transition scenarios; it records no
// material transaction.
func CreateTestOrder(t *testing.T, db *gorm.DB, party *models.Party, orderType models.OrderType, status models.OrderStatus, priority int) *models.Order {
	t.Helper()

	order := &models.Order{
		PartyID:     party.ID,
		PartyName:   party.Name,
		OrderType:   orderType,
		TotalPrice:  decimal.Zero,
		TotalWeight: decimal.Zero,
		Status:      status,
		Priority:    priority,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create test order: %v", err)
	}
	return order
}

// CreateTestFinancialTransaction inserts a payment or receipt directly,
// without refreshing the party balance.
func CreateTestFinancialTransaction(t *testing.T, db *gorm.DB, party *models.Party, paymentType models.PaymentType, amount string) *models.FinancialTransaction {
	t.Helper()

	ft := &models.FinancialTransaction{
		PartyID:       party.ID,
		PartyName:     party.Name,
		Amount:        Dec(t, amount),
		PaymentType:   paymentType,
		PaymentMethod: models.PaymentMethodCash,
	}
	if err := db.Create(ft).Error; err != nil {
		t.Fatalf("failed to create test financial transaction: %v", err)
	}
	return ft
}
