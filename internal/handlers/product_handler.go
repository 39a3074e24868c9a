package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/services"
)

// ProductHandler handles product catalogue requests.
type ProductHandler struct {
	productService services.ProductServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService services.ProductServicer) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents the request payload for creating a product.
// Price and weight accept JSON numbers or decimal strings.
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"12.50"`
	Weight      *decimal.Decimal `json:"weight" binding:"required" swaggertype:"string" example:"0.75"`
	Description string           `json:"description" binding:"max=500"`
}

// CreateProduct handles adding a product to the catalogue
// @Summary     Create a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body CreateProductRequest true "Product details"
// @Success     201 {object} models.Product "Product created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req.Name, *req.Price, *req.Weight, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// ListProducts handles listing the catalogue
// @Summary     List products
// @Tags        products
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Product] "Paginated products"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProduct handles retrieving a single product
// @Summary     Get a product
// @Tags        products
// @Produce     json
// @Param       id path string true "Product ID"
// @Success     200 {object} models.Product "Product"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := parsePathID(c, "id", apperrors.ErrProductNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
