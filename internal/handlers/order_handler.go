package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/services"
)

// OrderHandler handles order lifecycle requests.
type OrderHandler struct {
	orderService services.OrderServicer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService services.OrderServicer) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// LineItemRequest is one requested order line. Product name, price and
// weight are always taken from the catalogue, so they are not accepted here.
type LineItemRequest struct {
	ProductID string           `json:"product_id" binding:"required"`
	Quantity  *decimal.Decimal `json:"quantity" binding:"required" swaggertype:"string" example:"3"`
}

// CreateOrderRequest represents the request payload for creating an order
type CreateOrderRequest struct {
	PartyID          string            `json:"party_id" binding:"required"`
	OrderType        models.OrderType  `json:"order_type" binding:"required,order_type"`
	LineItems        []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
	ReferenceOrderID *string           `json:"reference_order_id"`
}

// UpdateOrderStatusRequest represents the request payload for a status change
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,order_status"`
}

// ReorderRequest represents the new manual order of a party's active orders
type ReorderRequest struct {
	PartyID   string           `json:"party_id" binding:"required"`
	OrderType models.OrderType `json:"order_type" binding:"required,order_type"`
	OrderIDs  []string         `json:"order_ids"`
}

// CreateOrder handles the creation of a new order
// @Summary     Create an order
// @Description Create a sale or purchase order. Totals are computed from the product catalogue and a material transaction is recorded with the order.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       request body CreateOrderRequest true "Order details"
// @Success     201 {object} models.Order "Order created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Party, product or reference order not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	items := make([]services.LineItemInput, len(req.LineItems))
	for i, li := range req.LineItems {
		items[i] = services.LineItemInput{ProductID: li.ProductID, Quantity: *li.Quantity}
	}

	referenceOrderID := req.ReferenceOrderID
	if referenceOrderID != nil && *referenceOrderID == "" {
		referenceOrderID = nil
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req.PartyID, req.OrderType, items, referenceOrderID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders handles listing orders
// @Summary     List orders
// @Description Active orders come first by priority, completed orders last
// @Tags        orders
// @Produce     json
// @Param       party_id   query string false "Filter by party"
// @Param       order_type query string false "Filter by order type (sale, purchase)"
// @Param       status     query string false "Filter by status (start, inprocess, completed)"
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Order] "Paginated orders"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var filter services.OrderFilter
	filter.PartyID = optionalQuery(c, "party_id")
	if v := optionalQuery(c, "order_type"); v != nil {
		orderType := models.OrderType(*v)
		if !orderType.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "invalid order_type"))
			return
		}
		filter.OrderType = &orderType
	}
	if v := optionalQuery(c, "status"); v != nil {
		status := models.OrderStatus(*v)
		if !status.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "invalid status"))
			return
		}
		filter.Status = &status
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetOrder handles retrieving a single order
// @Summary     Get an order
// @Tags        orders
// @Produce     json
// @Param       id path string true "Order ID"
// @Success     200 {object} models.Order "Order"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := parsePathID(c, "id", apperrors.ErrOrderNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus handles moving an order to its next status
// @Summary     Change order status
// @Description Allowed transitions are start to inprocess and inprocess to completed
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       id      path string                   true "Order ID"
// @Param       request body UpdateOrderStatusRequest true "Target status"
// @Success     200 {object} models.Order "Updated order"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Failure     409 {object} ErrorResponse "Invalid transition"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := parsePathID(c, "id", apperrors.ErrOrderNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	order, err := h.orderService.TransitionStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ReorderOrders handles assigning new priorities to a party's active orders
// @Summary     Reorder active orders
// @Description The id list must name every active order of the party and type exactly once
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       request body ReorderRequest true "New order"
// @Success     200 {array}  models.Order "Active orders in their new order"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Party not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/reorder [post]
func (h *OrderHandler) ReorderOrders(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	orders, err := h.orderService.Reorder(c.Request.Context(), req.PartyID, req.OrderType, req.OrderIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
