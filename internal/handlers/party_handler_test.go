package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/services"
)

// --- mock party and balance services ---

type mockPartyService struct {
	createPartyFn func(name, contact string) (*models.Party, error)
	getPartyFn    func(partyID string) (*models.Party, error)
	listPartiesFn func(page pagination.PageRequest) (*pagination.PageResponse[models.Party], error)
}

func (m *mockPartyService) CreateParty(_ context.Context, name, contact string) (*models.Party, error) {
	if m.createPartyFn != nil {
		return m.createPartyFn(name, contact)
	}
	return &models.Party{}, nil
}

func (m *mockPartyService) GetParty(_ context.Context, partyID string) (*models.Party, error) {
	if m.getPartyFn != nil {
		return m.getPartyFn(partyID)
	}
	return &models.Party{}, nil
}

func (m *mockPartyService) ListParties(_ context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Party], error) {
	if m.listPartiesFn != nil {
		return m.listPartiesFn(page)
	}
	resp := pagination.NewPageResponse([]models.Party{}, 1, 20, 0)
	return &resp, nil
}

var _ services.PartyServicer = (*mockPartyService)(nil)

type mockBalanceService struct {
	computeBalanceFn   func(partyID string) (*services.BalanceSummary, error)
	reconcileBalanceFn func(partyID string) (*models.Party, error)
}

func (m *mockBalanceService) ComputeBalance(_ context.Context, partyID string) (*services.BalanceSummary, error) {
	if m.computeBalanceFn != nil {
		return m.computeBalanceFn(partyID)
	}
	return &services.BalanceSummary{PartyID: partyID, Direction: models.BalanceSettled}, nil
}

func (m *mockBalanceService) ReconcileBalance(_ context.Context, partyID string) (*models.Party, error) {
	if m.reconcileBalanceFn != nil {
		return m.reconcileBalanceFn(partyID)
	}
	return &models.Party{}, nil
}

func (m *mockBalanceService) RefreshPartyBalance(*gorm.DB, *models.Party) error { return nil }

var _ services.BalanceServicer = (*mockBalanceService)(nil)

func setupPartyRouter(handler *PartyHandler) *gin.Engine {
	r := gin.New()
	r.POST("/parties", handler.CreateParty)
	r.GET("/parties", handler.ListParties)
	r.GET("/parties/:id", handler.GetParty)
	r.GET("/parties/:id/balance", handler.GetBalance)
	r.POST("/parties/:id/balance/reconcile", handler.ReconcileBalance)
	return r
}

func TestPartyHandler_CreateParty(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		partySvc := &mockPartyService{
			createPartyFn: func(name, contact string) (*models.Party, error) {
				p := &models.Party{Base: models.Base{ID: testPartyID}, Name: name, Contact: contact}
				p.SetBalance(decimal.Zero)
				return p, nil
			},
		}
		r := setupPartyRouter(NewPartyHandler(partySvc, &mockBalanceService{}))

		rec := doRequest(r, "POST", "/parties", `{"name":"Acme","contact":"555-0101"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		party := parseJSON(t, rec)["party"].(map[string]interface{})
		if party["name"] != "Acme" {
			t.Errorf("expected name Acme, got %v", party["name"])
		}
		if party["balance"] != "0" {
			t.Errorf("expected balance as decimal string, got %v", party["balance"])
		}
		if party["balance_direction"] != "settled" {
			t.Errorf("expected settled, got %v", party["balance_direction"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupPartyRouter(NewPartyHandler(&mockPartyService{}, &mockBalanceService{}))

		rec := doRequest(r, "POST", "/parties", `{"contact":"x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_ERROR")
	})

	t.Run("returns 400 when service rejects blank name", func(t *testing.T) {
		partySvc := &mockPartyService{
			createPartyFn: func(string, string) (*models.Party, error) {
				return nil, apperrors.WithMessage(apperrors.ErrValidation, "party name is required")
			},
		}
		r := setupPartyRouter(NewPartyHandler(partySvc, &mockBalanceService{}))

		rec := doRequest(r, "POST", "/parties", `{"name":"   "}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPartyHandler_GetParty(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		partySvc := &mockPartyService{
			getPartyFn: func(partyID string) (*models.Party, error) {
				return &models.Party{Base: models.Base{ID: partyID}, Name: "Acme"}, nil
			},
		}
		r := setupPartyRouter(NewPartyHandler(partySvc, &mockBalanceService{}))

		rec := doRequest(r, "GET", "/parties/"+testPartyID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		partySvc := &mockPartyService{
			getPartyFn: func(string) (*models.Party, error) {
				return nil, apperrors.ErrPartyNotFound
			},
		}
		r := setupPartyRouter(NewPartyHandler(partySvc, &mockBalanceService{}))

		rec := doRequest(r, "GET", "/parties/"+testPartyID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PARTY_NOT_FOUND")
	})

	t.Run("returns 404 on malformed id", func(t *testing.T) {
		called := false
		partySvc := &mockPartyService{
			getPartyFn: func(string) (*models.Party, error) {
				called = true
				return &models.Party{}, nil
			},
		}
		r := setupPartyRouter(NewPartyHandler(partySvc, &mockBalanceService{}))

		rec := doRequest(r, "GET", "/parties/abc", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if called {
			t.Error("service should not be called for a malformed id")
		}
	})
}

func TestPartyHandler_ListParties(t *testing.T) {
	t.Run("passes pagination", func(t *testing.T) {
		var got pagination.PageRequest
		partySvc := &mockPartyService{
			listPartiesFn: func(page pagination.PageRequest) (*pagination.PageResponse[models.Party], error) {
				got = page
				resp := pagination.NewPageResponse([]models.Party{{Name: "Acme"}}, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		r := setupPartyRouter(NewPartyHandler(partySvc, &mockBalanceService{}))

		rec := doRequest(r, "GET", "/parties?page=2&page_size=5", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Page != 2 || got.PageSize != 5 {
			t.Errorf("expected page 2 size 5, got %+v", got)
		}
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		r := setupPartyRouter(NewPartyHandler(&mockPartyService{}, &mockBalanceService{}))

		rec := doRequest(r, "GET", "/parties?page_size=1000", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPartyHandler_Balance(t *testing.T) {
	t.Run("returns breakdown", func(t *testing.T) {
		balanceSvc := &mockBalanceService{
			computeBalanceFn: func(partyID string) (*services.BalanceSummary, error) {
				return &services.BalanceSummary{
					PartyID:       partyID,
					MaterialTotal: decimal.NewFromInt(300),
					Payments:      decimal.NewFromInt(50),
					Balance:       decimal.NewFromInt(250),
					Direction:     models.BalanceToReceive,
				}, nil
			},
		}
		r := setupPartyRouter(NewPartyHandler(&mockPartyService{}, balanceSvc))

		rec := doRequest(r, "GET", "/parties/"+testPartyID+"/balance", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		balance := parseJSON(t, rec)["balance"].(map[string]interface{})
		if balance["balance"] != "250" || balance["direction"] != "to_receive" {
			t.Errorf("unexpected balance body: %v", balance)
		}
	})

	t.Run("reconcile returns party", func(t *testing.T) {
		balanceSvc := &mockBalanceService{
			reconcileBalanceFn: func(partyID string) (*models.Party, error) {
				p := &models.Party{Base: models.Base{ID: partyID}}
				p.SetBalance(decimal.NewFromInt(-15))
				return p, nil
			},
		}
		r := setupPartyRouter(NewPartyHandler(&mockPartyService{}, balanceSvc))

		rec := doRequest(r, "POST", "/parties/"+testPartyID+"/balance/reconcile", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		party := parseJSON(t, rec)["party"].(map[string]interface{})
		if party["balance_direction"] != "to_pay" {
			t.Errorf("expected to_pay, got %v", party["balance_direction"])
		}
	})

	t.Run("returns 500 on storage failure", func(t *testing.T) {
		balanceSvc := &mockBalanceService{
			computeBalanceFn: func(string) (*services.BalanceSummary, error) {
				return nil, apperrors.ErrStorage
			},
		}
		r := setupPartyRouter(NewPartyHandler(&mockPartyService{}, balanceSvc))

		rec := doRequest(r, "GET", "/parties/"+testPartyID+"/balance", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "STORAGE_ERROR")
	})
}
