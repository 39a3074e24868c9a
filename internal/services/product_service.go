package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/uuid"
)

// productService handles the product catalogue.
type productService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductServicer.
func NewProductService(db *gorm.DB) ProductServicer {
	return &productService{db: db}
}

// CreateProduct adds a product to the catalogue
func (s *productService) CreateProduct(ctx context.Context, name string, price, weight decimal.Decimal, description string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "product name is required")
	}
	if price.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "price must not be negative")
	}
	if weight.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "weight must not be negative")
	}
	if err := checkStorable("price", price); err != nil {
		return nil, err
	}
	if err := checkStorable("weight", weight); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        name,
		Price:       price,
		Weight:      weight,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *productService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	if !uuid.IsValid(productID) {
		return nil, apperrors.ErrProductNotFound
	}

	var product models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", uuid.Canonical(productID)).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &product, nil
}

// ListProducts retrieves a paginated list of products ordered by name.
func (s *productService) ListProducts(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Product{}).Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var products []models.Product
	if err := base.Scopes(pagination.Paginate(page)).
		Order("name ASC").Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(products, page.Page, page.PageSize, totalItems)
	return &result, nil
}
