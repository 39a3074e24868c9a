package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/services"
)

// PartyHandler handles party and balance requests.
type PartyHandler struct {
	partyService   services.PartyServicer
	balanceService services.BalanceServicer
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(partyService services.PartyServicer, balanceService services.BalanceServicer) *PartyHandler {
	return &PartyHandler{partyService: partyService, balanceService: balanceService}
}

// CreatePartyRequest represents the request payload for creating a party
type CreatePartyRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Contact string `json:"contact" binding:"max=200"`
}

// CreateParty handles the creation of a new party
// @Summary     Create a party
// @Description Register a customer or supplier with a zero balance
// @Tags        parties
// @Accept      json
// @Produce     json
// @Param       request body CreatePartyRequest true "Party details"
// @Success     201 {object} models.Party "Party created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parties [post]
func (h *PartyHandler) CreateParty(c *gin.Context) {
	var req CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), req.Name, req.Contact)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"party": party})
}

// ListParties handles listing parties
// @Summary     List parties
// @Tags        parties
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Party] "Paginated parties"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parties [get]
func (h *PartyHandler) ListParties(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.partyService.ListParties(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetParty handles retrieving a single party
// @Summary     Get a party
// @Tags        parties
// @Produce     json
// @Param       id path string true "Party ID"
// @Success     200 {object} models.Party "Party"
// @Failure     404 {object} ErrorResponse "Party not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parties/{id} [get]
func (h *PartyHandler) GetParty(c *gin.Context) {
	partyID, err := parsePathID(c, "id", apperrors.ErrPartyNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	party, err := h.partyService.GetParty(c.Request.Context(), partyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"party": party})
}

// GetBalance handles computing a party balance from its transaction history
// @Summary     Get a party balance
// @Description Recompute the balance from all material and financial transactions
// @Tags        parties
// @Produce     json
// @Param       id path string true "Party ID"
// @Success     200 {object} services.BalanceSummary "Balance breakdown"
// @Failure     404 {object} ErrorResponse "Party not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parties/{id}/balance [get]
func (h *PartyHandler) GetBalance(c *gin.Context) {
	partyID, err := parsePathID(c, "id", apperrors.ErrPartyNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.balanceService.ComputeBalance(c.Request.Context(), partyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": summary})
}

// ReconcileBalance handles rewriting the stored balance from history
// @Summary     Reconcile a party balance
// @Tags        parties
// @Produce     json
// @Param       id path string true "Party ID"
// @Success     200 {object} models.Party "Reconciled party"
// @Failure     404 {object} ErrorResponse "Party not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parties/{id}/balance/reconcile [post]
func (h *PartyHandler) ReconcileBalance(c *gin.Context) {
	partyID, err := parsePathID(c, "id", apperrors.ErrPartyNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	party, err := h.balanceService.ReconcileBalance(c.Request.Context(), partyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"party": party})
}
