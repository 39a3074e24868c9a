package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNew(t *testing.T) {
	id := New()
	parsed, err := googleuuid.Parse(id)
	if err != nil {
		t.Fatalf("expected valid uuid, got %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestNew_TimeOrdered(t *testing.T) {
	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		if next <= prev {
			t.Fatalf("expected %q to sort after %q", next, prev)
		}
		prev = next
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("0190A3E2-7C1B-7D4E-8F00-112233445566")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0190a3e2-7c1b-7d4e-8f00-112233445566" {
		t.Errorf("expected lowercase form, got %q", got)
	}

	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for invalid uuid")
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(New()) {
		t.Error("expected generated id to be valid")
	}
	if IsValid("abc") {
		t.Error("expected abc to be invalid")
	}
}

func TestCanonical(t *testing.T) {
	if got := Canonical("0190A3E2-7C1B-7D4E-8F00-112233445566"); got != "0190a3e2-7c1b-7d4e-8f00-112233445566" {
		t.Errorf("expected lowercase form, got %q", got)
	}
	if got := Canonical("abc"); got != "abc" {
		t.Errorf("expected invalid input unchanged, got %q", got)
	}
}
