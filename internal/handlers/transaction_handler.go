package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/services"
)

// TransactionHandler handles material and financial transaction requests.
type TransactionHandler struct {
	materialService  services.MaterialTransactionServicer
	financialService services.FinancialTransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(materialService services.MaterialTransactionServicer, financialService services.FinancialTransactionServicer) *TransactionHandler {
	return &TransactionHandler{materialService: materialService, financialService: financialService}
}

// CreateFinancialTransactionRequest represents the request payload for
// recording a payment or receipt
type CreateFinancialTransactionRequest struct {
	PartyID       string               `json:"party_id" binding:"required"`
	Amount        *decimal.Decimal     `json:"amount" binding:"required" swaggertype:"string" example:"50.00"`
	PaymentType   models.PaymentType   `json:"payment_type" binding:"required,payment_type"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"omitempty,payment_method"`
	Description   string               `json:"description" binding:"max=500"`
}

// CreateFinancialTransaction handles recording a payment or receipt
// @Summary     Record a payment or receipt
// @Description A receipt adds the amount to the party balance, a payment subtracts it. The method defaults to cash.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateFinancialTransactionRequest true "Transaction details"
// @Success     201 {object} models.FinancialTransaction "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Party not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /financial-transactions [post]
func (h *TransactionHandler) CreateFinancialTransaction(c *gin.Context) {
	var req CreateFinancialTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	transaction, err := h.financialService.Record(
		c.Request.Context(),
		req.PartyID,
		*req.Amount,
		req.PaymentType,
		req.PaymentMethod,
		req.Description,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListFinancialTransactions handles listing payments and receipts
// @Summary     List financial transactions
// @Tags        transactions
// @Produce     json
// @Param       party_id  query string false "Filter by party"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.FinancialTransaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /financial-transactions [get]
func (h *TransactionHandler) ListFinancialTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter := services.TransactionFilter{PartyID: optionalQuery(c, "party_id")}
	result, err := h.financialService.ListFinancialTransactions(c.Request.Context(), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMaterialTransactions handles listing the ledger entries derived from orders
// @Summary     List material transactions
// @Tags        transactions
// @Produce     json
// @Param       party_id  query string false "Filter by party"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.MaterialTransaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /material-transactions [get]
func (h *TransactionHandler) ListMaterialTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter := services.TransactionFilter{PartyID: optionalQuery(c, "party_id")}
	result, err := h.materialService.ListMaterialTransactions(c.Request.Context(), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
