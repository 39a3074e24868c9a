package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/uuid"
)

// partyService handles party-related business logic.
type partyService struct {
	db *gorm.DB
}

// NewPartyService creates a new PartyServicer.
func NewPartyService(db *gorm.DB) PartyServicer {
	return &partyService{db: db}
}

// CreateParty creates a party with a zero balance
func (s *partyService) CreateParty(ctx context.Context, name, contact string) (*models.Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "party name is required")
	}

	party := &models.Party{
		Name:    name,
		Contact: strings.TrimSpace(contact),
	}
	party.SetBalance(party.Balance)

	if err := s.db.WithContext(ctx).Create(party).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	logger.Get().Infow("party created", "party_id", party.ID)
	return party, nil
}

// GetParty retrieves a party by ID
func (s *partyService) GetParty(ctx context.Context, partyID string) (*models.Party, error) {
	return findParty(s.db.WithContext(ctx), partyID, false)
}

// ListParties retrieves a paginated list of parties ordered by name.
func (s *partyService) ListParties(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Party], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Party{}).Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var parties []models.Party
	if err := base.Scopes(pagination.Paginate(page)).
		Order("name ASC").Order("id ASC").
		Find(&parties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(parties, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// findParty loads a party, optionally taking a row lock for the rest of the
// enclosing transaction.
func findParty(db *gorm.DB, partyID string, forUpdate bool) (*models.Party, error) {
	if !uuid.IsValid(partyID) {
		return nil, apperrors.ErrPartyNotFound
	}

	q := db
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var party models.Party
	if err := q.Where("id = ?", uuid.Canonical(partyID)).First(&party).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPartyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &party, nil
}
