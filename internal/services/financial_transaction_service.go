package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/uuid"
)

// financialTransactionService records manual payments and receipts.
type financialTransactionService struct {
	db             *gorm.DB
	locks          *PartyLocks
	balanceService BalanceServicer
}

// NewFinancialTransactionService creates a new FinancialTransactionServicer.
func NewFinancialTransactionService(db *gorm.DB, locks *PartyLocks, balanceService BalanceServicer) FinancialTransactionServicer {
	return &financialTransactionService{
		db:             db,
		locks:          locks,
		balanceService: balanceService,
	}
}

// Record stores a payment or receipt and refreshes the party balance in the
// same database transaction. An empty payment method defaults to cash.
func (s *financialTransactionService) Record(
	ctx context.Context,
	partyID string,
	amount decimal.Decimal,
	paymentType models.PaymentType,
	paymentMethod models.PaymentMethod,
	description string,
) (*models.FinancialTransaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	if err := checkStorable("amount", amount); err != nil {
		return nil, err
	}
	if !paymentType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "payment type must be payment or receipt")
	}
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCash
	}
	if !paymentMethod.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "payment method must be one of cash, card, upi, bank")
	}

	partyID = uuid.Canonical(partyID)
	unlock, err := s.locks.Acquire(ctx, partyID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	defer unlock()

	var entry *models.FinancialTransaction
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		party, err := findParty(tx, partyID, true)
		if err != nil {
			return err
		}

		entry = &models.FinancialTransaction{
			PartyID:       party.ID,
			PartyName:     party.Name,
			Amount:        amount,
			PaymentType:   paymentType,
			PaymentMethod: paymentMethod,
			Description:   description,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		return s.balanceService.RefreshPartyBalance(tx, party)
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	logger.Get().Infow("financial transaction recorded",
		"transaction_id", entry.ID,
		"party_id", entry.PartyID,
		"payment_type", entry.PaymentType,
		"amount", entry.Amount.String(),
	)
	return entry, nil
}

// ListFinancialTransactions retrieves payments and receipts, newest first.
func (s *financialTransactionService) ListFinancialTransactions(ctx context.Context, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.FinancialTransaction], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.FinancialTransaction{})
	if filter.PartyID != nil {
		if !uuid.IsValid(*filter.PartyID) {
			empty := pagination.NewPageResponse([]models.FinancialTransaction{}, page.Page, page.PageSize, 0)
			return &empty, nil
		}
		base = base.Where("party_id = ?", uuid.Canonical(*filter.PartyID))
	}
	base = base.Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var entries []models.FinancialTransaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
