package testutil_test

import (
	"testing"

	"ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"parties", "products", "orders", "order_line_items", "material_transactions", "financial_transactions"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestParty(t, first)

	var count int64
	if err := second.Model(&models.Party{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected isolated database, found %d parties", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	party := testutil.CreateTestParty(t, db)
	if party.ID == "" {
		t.Fatal("party should have an ID")
	}
	if party.BalanceDirection != models.BalanceSettled {
		t.Errorf("expected settled party, got %s", party.BalanceDirection)
	}

	product := testutil.CreateTestProduct(t, db, "12.50", "0.75")
	testutil.AssertDecimal(t, product.Price, "12.5")

	var reloaded models.Product
	if err := db.First(&reloaded, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	testutil.AssertDecimal(t, reloaded.Weight, "0.75")

	order := testutil.CreateTestOrder(t, db, party, models.OrderTypeSale, models.OrderStatusInProcess, 3)
	if order.Priority != 3 || order.Status != models.OrderStatusInProcess {
		t.Errorf("unexpected order fixture: priority=%d status=%s", order.Priority, order.Status)
	}

	ft := testutil.CreateTestFinancialTransaction(t, db, party, models.PaymentTypeReceipt, "40")
	testutil.AssertDecimal(t, ft.Amount, "40")
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrPartyNotFound, "custom message")
	testutil.AssertAppError(t, err, "PARTY_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
