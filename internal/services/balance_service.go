package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/models"
	"ledgerbook/internal/uuid"
)

// balanceService derives party balances from full transaction history.
type balanceService struct {
	db    *gorm.DB
	locks *PartyLocks
}

// NewBalanceService creates a new BalanceServicer.
func NewBalanceService(db *gorm.DB, locks *PartyLocks) BalanceServicer {
	return &balanceService{db: db, locks: locks}
}

// ComputeBalance recomputes a party's balance from its material and
// financial transactions. It never writes.
func (s *balanceService) ComputeBalance(ctx context.Context, partyID string) (*BalanceSummary, error) {
	db := s.db.WithContext(ctx)
	party, err := findParty(db, partyID, false)
	if err != nil {
		return nil, err
	}
	return computeBalance(db, party.ID)
}

// ReconcileBalance recomputes the balance and stores it on the party row.
func (s *balanceService) ReconcileBalance(ctx context.Context, partyID string) (*models.Party, error) {
	partyID = uuid.Canonical(partyID)
	unlock, err := s.locks.Acquire(ctx, partyID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	defer unlock()

	var party *models.Party
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findParty(tx, partyID, true)
		if err != nil {
			return err
		}
		previous := p.Balance
		if err := s.RefreshPartyBalance(tx, p); err != nil {
			return err
		}
		if !previous.Equal(p.Balance) {
			logger.Get().Warnw("party balance drift corrected",
				"party_id", p.ID,
				"stored", previous.String(),
				"computed", p.Balance.String(),
			)
		}
		party = p
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return party, nil
}

// RefreshPartyBalance recomputes the balance inside tx and persists it on
// the party. Callers hold the party lock.
func (s *balanceService) RefreshPartyBalance(tx *gorm.DB, party *models.Party) error {
	summary, err := computeBalance(tx, party.ID)
	if err != nil {
		return err
	}
	if err := tx.Model(party).Update("balance", summary.Balance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	party.SetBalance(summary.Balance)
	return nil
}

// computeBalance sums the signed material amounts and the financial
// contributions (receipts add, payments subtract) of a party.
func computeBalance(db *gorm.DB, partyID string) (*BalanceSummary, error) {
	var material []models.MaterialTransaction
	if err := db.Select("id", "amount").
		Where("party_id = ?", partyID).
		Find(&material).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var financial []models.FinancialTransaction
	if err := db.Select("id", "amount", "payment_type").
		Where("party_id = ?", partyID).
		Find(&financial).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	summary := &BalanceSummary{
		PartyID:        partyID,
		MaterialTotal:  decimal.Zero,
		Receipts:       decimal.Zero,
		Payments:       decimal.Zero,
		MaterialCount:  len(material),
		FinancialCount: len(financial),
	}
	for _, mt := range material {
		summary.MaterialTotal = summary.MaterialTotal.Add(mt.Amount)
	}
	net := decimal.Zero
	for _, ft := range financial {
		switch ft.PaymentType {
		case models.PaymentTypeReceipt:
			summary.Receipts = summary.Receipts.Add(ft.Amount)
		case models.PaymentTypePayment:
			summary.Payments = summary.Payments.Add(ft.Amount)
		}
		net = net.Add(ft.SignedAmount())
	}

	summary.Balance = summary.MaterialTotal.Add(net)
	summary.Direction = models.DirectionOf(summary.Balance)
	return summary, nil
}
