package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/services"
)

// --- mock product service ---

type mockProductService struct {
	createProductFn func(name string, price, weight decimal.Decimal, description string) (*models.Product, error)
	getProductFn    func(productID string) (*models.Product, error)
	listProductsFn  func(page pagination.PageRequest) (*pagination.PageResponse[models.Product], error)
}

func (m *mockProductService) CreateProduct(_ context.Context, name string, price, weight decimal.Decimal, description string) (*models.Product, error) {
	if m.createProductFn != nil {
		return m.createProductFn(name, price, weight, description)
	}
	return &models.Product{}, nil
}

func (m *mockProductService) GetProduct(_ context.Context, productID string) (*models.Product, error) {
	if m.getProductFn != nil {
		return m.getProductFn(productID)
	}
	return &models.Product{}, nil
}

func (m *mockProductService) ListProducts(_ context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error) {
	if m.listProductsFn != nil {
		return m.listProductsFn(page)
	}
	resp := pagination.NewPageResponse([]models.Product{}, 1, 20, 0)
	return &resp, nil
}

var _ services.ProductServicer = (*mockProductService)(nil)

func setupProductRouter(handler *ProductHandler) *gin.Engine {
	r := gin.New()
	r.POST("/products", handler.CreateProduct)
	r.GET("/products", handler.ListProducts)
	r.GET("/products/:id", handler.GetProduct)
	return r
}

func TestProductHandler_CreateProduct(t *testing.T) {
	t.Run("accepts numbers and strings", func(t *testing.T) {
		var gotPrice, gotWeight decimal.Decimal
		productSvc := &mockProductService{
			createProductFn: func(name string, price, weight decimal.Decimal, description string) (*models.Product, error) {
				gotPrice, gotWeight = price, weight
				return &models.Product{Base: models.Base{ID: testProductID}, Name: name, Price: price, Weight: weight}, nil
			},
		}
		r := setupProductRouter(NewProductHandler(productSvc))

		rec := doRequest(r, "POST", "/products", `{"name":"Bolt","price":"12.50","weight":0.75}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotPrice.Equal(decimal.RequireFromString("12.5")) || !gotWeight.Equal(decimal.RequireFromString("0.75")) {
			t.Errorf("unexpected price/weight %s/%s", gotPrice, gotWeight)
		}
		product := parseJSON(t, rec)["product"].(map[string]interface{})
		if product["price"] != "12.5" {
			t.Errorf("expected price as decimal string, got %v", product["price"])
		}
	})

	t.Run("returns 400 on missing price", func(t *testing.T) {
		r := setupProductRouter(NewProductHandler(&mockProductService{}))

		rec := doRequest(r, "POST", "/products", `{"name":"Bolt","weight":1}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_ERROR")
	})

	t.Run("returns 400 on malformed decimal", func(t *testing.T) {
		r := setupProductRouter(NewProductHandler(&mockProductService{}))

		rec := doRequest(r, "POST", "/products", `{"name":"Bolt","price":"cheap","weight":1}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestProductHandler_GetProduct(t *testing.T) {
	t.Run("returns 404 when not found", func(t *testing.T) {
		productSvc := &mockProductService{
			getProductFn: func(string) (*models.Product, error) {
				return nil, apperrors.ErrProductNotFound
			},
		}
		r := setupProductRouter(NewProductHandler(productSvc))

		rec := doRequest(r, "GET", "/products/"+testProductID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PRODUCT_NOT_FOUND")
	})

	t.Run("returns 200 on success", func(t *testing.T) {
		productSvc := &mockProductService{
			getProductFn: func(productID string) (*models.Product, error) {
				return &models.Product{Base: models.Base{ID: productID}, Name: "Bolt"}, nil
			},
		}
		r := setupProductRouter(NewProductHandler(productSvc))

		rec := doRequest(r, "GET", "/products/"+testProductID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestProductHandler_ListProducts(t *testing.T) {
	r := setupProductRouter(NewProductHandler(&mockProductService{}))

	rec := doRequest(r, "GET", "/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := parseJSON(t, rec)["data"].([]interface{}); !ok {
		t.Error("expected data array")
	}
}
