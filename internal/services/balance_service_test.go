package services

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/testutil"
)

func TestComputeBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("sale_then_payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		l := newLedger(db)
		party := testutil.CreateTestParty(t, db)
		product := testutil.CreateTestProduct(t, db, "100", "1")

		summary, err := l.balances.ComputeBalance(ctx, party.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, summary.Balance, "0")
		if summary.Direction != models.BalanceSettled {
			t.Errorf("expected settled, got %s", summary.Direction)
		}

		_, err = l.orders.CreateOrder(ctx, party.ID, models.OrderTypeSale, []LineItemInput{line(product, "3")}, nil)
		testutil.AssertNoError(t, err)

		summary, err = l.balances.ComputeBalance(ctx, party.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, summary.Balance, "300")

		_, err = l.financial.Record(ctx, party.ID, decimal.NewFromInt(50), models.PaymentTypePayment, models.PaymentMethodCash, "")
		testutil.AssertNoError(t, err)

		summary, err = l.balances.ComputeBalance(ctx, party.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, summary.Balance, "250")
		testutil.AssertDecimal(t, summary.MaterialTotal, "300")
		testutil.AssertDecimal(t, summary.Payments, "50")
		testutil.AssertDecimal(t, summary.Receipts, "0")
		if summary.MaterialCount != 1 || summary.FinancialCount != 1 {
			t.Errorf("expected 1 material and 1 financial entry, got %d and %d", summary.MaterialCount, summary.FinancialCount)
		}
		if summary.Direction != models.BalanceToReceive {
			t.Errorf("expected to_receive, got %s", summary.Direction)
		}

		assertStoredBalanceMatches(t, l, party.ID)
	})

	t.Run("receipt_adds_and_purchase_subtracts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		l := newLedger(db)
		party := testutil.CreateTestParty(t, db)
		product := testutil.CreateTestProduct(t, db, "40", "1")

		_, err := l.orders.CreateOrder(ctx, party.ID, models.OrderTypePurchase, []LineItemInput{line(product, "5")}, nil)
		testutil.AssertNoError(t, err)
		_, err = l.financial.Record(ctx, party.ID, decimal.RequireFromString("75.25"), models.PaymentTypeReceipt, models.PaymentMethodBank, "advance")
		testutil.AssertNoError(t, err)

		summary, err := l.balances.ComputeBalance(ctx, party.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, summary.Balance, "-124.75")
		if summary.Direction != models.BalanceToPay {
			t.Errorf("expected to_pay, got %s", summary.Direction)
		}
		assertStoredBalanceMatches(t, l, party.ID)
	})

	t.Run("non_canonical_party_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		l := newLedger(db)
		party := testutil.CreateTestParty(t, db)
		product := testutil.CreateTestProduct(t, db, "100", "1")
		upper := strings.ToUpper(party.ID)

		_, err := l.orders.CreateOrder(ctx, upper, models.OrderTypeSale, []LineItemInput{line(product, "3")}, nil)
		testutil.AssertNoError(t, err)

		for _, id := range []string{party.ID, upper} {
			summary, err := l.balances.ComputeBalance(ctx, id)
			testutil.AssertNoError(t, err)
			testutil.AssertDecimal(t, summary.Balance, "300")
			if summary.PartyID != party.ID {
				t.Errorf("expected party id %s, got %s", party.ID, summary.PartyID)
			}
		}
	})

	t.Run("is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		l := newLedger(db)
		party := testutil.CreateTestParty(t, db)
		testutil.CreateTestFinancialTransaction(t, db, party, models.PaymentTypeReceipt, "10")

		first, err := l.balances.ComputeBalance(ctx, party.ID)
		testutil.AssertNoError(t, err)
		second, err := l.balances.ComputeBalance(ctx, party.ID)
		testutil.AssertNoError(t, err)
		if !first.Balance.Equal(second.Balance) {
			t.Errorf("expected identical balances, got %s and %s", first.Balance, second.Balance)
		}

		// A pure read leaves the stored balance alone.
		stored, err := l.parties.GetParty(ctx, party.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, stored.Balance, "0")
	})

	t.Run("party_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		l := newLedger(db)

		_, err := l.balances.ComputeBalance(ctx, "0190a3e2-7c1b-7d4e-8f00-112233445566")
		if !apperrors.IsNotFound(err) {
			t.Errorf("expected not found, got %v", err)
		}
		testutil.AssertAppError(t, err, "PARTY_NOT_FOUND")
	})
}

func TestReconcileBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("corrects_drift", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		l := newLedger(db)
		party := testutil.CreateTestParty(t, db)
		testutil.CreateTestFinancialTransaction(t, db, party, models.PaymentTypeReceipt, "30")
		testutil.CreateTestFinancialTransaction(t, db, party, models.PaymentTypePayment, "45")

		reconciled, err := l.balances.ReconcileBalance(ctx, party.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, reconciled.Balance, "-15")
		if reconciled.BalanceDirection != models.BalanceToPay {
			t.Errorf("expected to_pay, got %s", reconciled.BalanceDirection)
		}
		assertStoredBalanceMatches(t, l, party.ID)
	})

	t.Run("party_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		l := newLedger(db)

		_, err := l.balances.ReconcileBalance(ctx, "not-a-uuid")
		testutil.AssertAppError(t, err, "PARTY_NOT_FOUND")
	})

	t.Run("cancelled_context", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		locks := NewPartyLocks()
		balances := NewBalanceService(db, locks)
		party := testutil.CreateTestParty(t, db)

		release, err := locks.Acquire(ctx, party.ID)
		testutil.AssertNoError(t, err)
		defer release()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = balances.ReconcileBalance(cancelled, party.ID)
		testutil.AssertAppError(t, err, "STORAGE_ERROR")
	})
}
