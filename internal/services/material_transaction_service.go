package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/uuid"
)

// materialTransactionService derives ledger entries from orders.
type materialTransactionService struct {
	db *gorm.DB
}

// NewMaterialTransactionService creates a new MaterialTransactionServicer.
func NewMaterialTransactionService(db *gorm.DB) MaterialTransactionServicer {
	return &materialTransactionService{db: db}
}

// RecordForOrder writes the ledger entry of a newly created order. It must
// run inside the transaction that created the order so that both rows
// commit or roll back together. The unique index on order_id rejects a
// second entry for the same order.
func (s *materialTransactionService) RecordForOrder(tx *gorm.DB, party *models.Party, order *models.Order) (*models.MaterialTransaction, error) {
	if order.ID == "" {
		return nil, apperrors.Wrap(apperrors.ErrStorage, fmt.Errorf("order must be persisted before recording its transaction"))
	}

	amount := order.TotalPrice
	if order.OrderType == models.OrderTypePurchase {
		amount = amount.Neg()
	}

	entry := &models.MaterialTransaction{
		PartyID:     party.ID,
		PartyName:   party.Name,
		OrderID:     order.ID,
		OrderType:   order.OrderType,
		Amount:      amount,
		Description: materialDescription(order),
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return entry, nil
}

func materialDescription(order *models.Order) string {
	label := "Sale"
	if order.OrderType == models.OrderTypePurchase {
		label = "Purchase"
	}
	return fmt.Sprintf("%s order %s created", label, order.ShortID())
}

// ListMaterialTransactions retrieves ledger entries, newest first.
func (s *materialTransactionService) ListMaterialTransactions(ctx context.Context, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.MaterialTransaction], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.MaterialTransaction{})
	if filter.PartyID != nil {
		if !uuid.IsValid(*filter.PartyID) {
			empty := pagination.NewPageResponse([]models.MaterialTransaction{}, page.Page, page.PageSize, 0)
			return &empty, nil
		}
		base = base.Where("party_id = ?", uuid.Canonical(*filter.PartyID))
	}
	base = base.Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var entries []models.MaterialTransaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
