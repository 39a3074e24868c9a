package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "ledgerbook/internal/errors"
)

// Dec parses a decimal literal, failing the test on malformed input.
func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

// AssertDecimal compares by value, so "300" matches a stored 300.0000.
func AssertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(Dec(t, want)) {
		t.Errorf("expected %s, got %s", want, got.String())
	}
}

// AssertAppError checks that err carries the ledger error code expectedCode.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected %s, got %T: %v", expectedCode, err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected %s, got %s (%s: %s)", expectedCode, appErr.Code, appErr.Kind, appErr.Message)
	}
}

// AssertNoError stops the test on any error.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
