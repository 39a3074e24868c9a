package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/uuid"
)

// orderService handles the order lifecycle.
type orderService struct {
	db              *gorm.DB
	locks           *PartyLocks
	materialService MaterialTransactionServicer
	balanceService  BalanceServicer
}

// NewOrderService creates a new OrderServicer.
func NewOrderService(db *gorm.DB, locks *PartyLocks, materialService MaterialTransactionServicer, balanceService BalanceServicer) OrderServicer {
	return &orderService{
		db:              db,
		locks:           locks,
		materialService: materialService,
		balanceService:  balanceService,
	}
}

// CreateOrder creates an order from catalogue data, records its material
// transaction and refreshes the party balance, all in one database
// transaction.
func (s *orderService) CreateOrder(
	ctx context.Context,
	partyID string,
	orderType models.OrderType,
	items []LineItemInput,
	referenceOrderID *string,
) (*models.Order, error) {
	// Validate input
	if !orderType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "order type must be sale or purchase")
	}
	if len(items) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "order must have at least one line item")
	}
	for i, item := range items {
		if !item.Quantity.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("line item %d: quantity must be greater than zero", i+1))
		}
		if err := checkStorable(fmt.Sprintf("line item %d: quantity", i+1), item.Quantity); err != nil {
			return nil, err
		}
	}

	partyID = uuid.Canonical(partyID)
	unlock, err := s.locks.Acquire(ctx, partyID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	defer unlock()

	var order *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		party, err := findParty(tx, partyID, true)
		if err != nil {
			return err
		}

		if referenceOrderID != nil {
			if err := ensureOrderExists(tx, *referenceOrderID, apperrors.ErrReferenceOrderNotFound); err != nil {
				return err
			}
			ref := uuid.Canonical(*referenceOrderID)
			referenceOrderID = &ref
		}

		lineItems, err := buildLineItems(tx, items)
		if err != nil {
			return err
		}

		priority, err := nextPriority(tx, party.ID, orderType)
		if err != nil {
			return err
		}

		order = &models.Order{
			PartyID:          party.ID,
			PartyName:        party.Name,
			OrderType:        orderType,
			LineItems:        lineItems,
			Status:           models.OrderStatusStart,
			Priority:         priority,
			ReferenceOrderID: referenceOrderID,
		}
		order.RecalculateTotals()
		if err := checkStorable("order total price", order.TotalPrice); err != nil {
			return err
		}
		if err := checkStorable("order total weight", order.TotalWeight); err != nil {
			return err
		}

		if err := tx.Create(order).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		if _, err := s.materialService.RecordForOrder(tx, party, order); err != nil {
			return err
		}

		return s.balanceService.RefreshPartyBalance(tx, party)
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	logger.Get().Infow("order created",
		"order_id", order.ID,
		"party_id", order.PartyID,
		"order_type", order.OrderType,
		"total_price", order.TotalPrice.String(),
		"priority", order.Priority,
	)
	return order, nil
}

// buildLineItems resolves every requested product and snapshots its name,
// price and weight onto a new line item.
func buildLineItems(tx *gorm.DB, items []LineItemInput) ([]models.OrderLineItem, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if !uuid.IsValid(item.ProductID) {
			return nil, apperrors.WithMessage(apperrors.ErrProductNotFound, fmt.Sprintf("product %s not found", item.ProductID))
		}
		id := uuid.Canonical(item.ProductID)
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	var products []models.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lineItems := make([]models.OrderLineItem, 0, len(items))
	for i, item := range items {
		product, ok := byID[uuid.Canonical(item.ProductID)]
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrProductNotFound, fmt.Sprintf("product %s not found", item.ProductID))
		}
		li := models.OrderLineItem{
			Position:    i,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
			Weight:      product.Weight,
		}
		li.ID = uuid.New()
		lineItems = append(lineItems, li)
	}
	return lineItems, nil
}

// nextPriority returns one more than the highest priority among the party's
// active orders of the given type, or zero when there are none.
func nextPriority(tx *gorm.DB, partyID string, orderType models.OrderType) (int, error) {
	var next int
	err := tx.Model(&models.Order{}).
		Where("party_id = ? AND order_type = ? AND status <> ?", partyID, orderType, models.OrderStatusCompleted).
		Select("COALESCE(MAX(priority), -1) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return next, nil
}

func ensureOrderExists(tx *gorm.DB, orderID string, notFound *apperrors.AppError) error {
	if !uuid.IsValid(orderID) {
		return notFound
	}
	var count int64
	if err := tx.Model(&models.Order{}).Where("id = ?", uuid.Canonical(orderID)).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if count == 0 {
		return notFound
	}
	return nil
}

// GetOrder retrieves an order with its line items.
func (s *orderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return findOrder(s.db.WithContext(ctx), orderID)
}

func findOrder(db *gorm.DB, orderID string) (*models.Order, error) {
	if !uuid.IsValid(orderID) {
		return nil, apperrors.ErrOrderNotFound
	}

	var order models.Order
	if err := db.Scopes(preloadLineItems).Where("id = ?", uuid.Canonical(orderID)).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &order, nil
}

func preloadLineItems(db *gorm.DB) *gorm.DB {
	return db.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// ListOrders retrieves orders with active ones first by priority, then
// completed ones.
func (s *orderService) ListOrders(ctx context.Context, filter OrderFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Order], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Order{})
	if filter.PartyID != nil {
		if !uuid.IsValid(*filter.PartyID) {
			empty := pagination.NewPageResponse([]models.Order{}, page.Page, page.PageSize, 0)
			return &empty, nil
		}
		base = base.Where("party_id = ?", uuid.Canonical(*filter.PartyID))
	}
	if filter.OrderType != nil {
		base = base.Where("order_type = ?", *filter.OrderType)
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	base = base.Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var orders []models.Order
	if err := base.Scopes(pagination.Paginate(page), preloadLineItems).
		Order("CASE WHEN status = 'completed' THEN 1 ELSE 0 END").
		Order("priority ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(orders, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// TransitionStatus moves an order one step along start → inprocess →
// completed. Priority is left untouched.
func (s *orderService) TransitionStatus(ctx context.Context, orderID string, target models.OrderStatus) (*models.Order, error) {
	if !target.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "status must be one of start, inprocess, completed")
	}

	current, err := findOrder(s.db.WithContext(ctx), orderID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locks.Acquire(ctx, current.PartyID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	defer unlock()

	var order *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findOrder(tx, orderID)
		if err != nil {
			return err
		}
		// Row lock shared with Reorder.
		if _, err := findParty(tx, existing.PartyID, true); err != nil {
			return err
		}
		if !existing.Status.CanTransitionTo(target) {
			return apperrors.WithMessage(apperrors.ErrInvalidTransition,
				fmt.Sprintf("cannot move order from %s to %s", existing.Status, target))
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", existing.ID, existing.Status).
			Update("status", target)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrStorage, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidTransition, "order status changed concurrently")
		}

		order, err = findOrder(tx, orderID)
		return err
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	logger.Get().Infow("order status changed",
		"order_id", order.ID,
		"from", current.Status,
		"to", order.Status,
	)
	return order, nil
}

// Reorder assigns priorities 0..n-1 to the party's active orders of the
// given type in the supplied order. The list must name every active order
// exactly once.
func (s *orderService) Reorder(ctx context.Context, partyID string, orderType models.OrderType, orderedIDs []string) ([]models.Order, error) {
	if !orderType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "order type must be sale or purchase")
	}

	requested := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		key := uuid.Canonical(id)
		if _, dup := requested[key]; dup {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("order %s listed more than once", id))
		}
		requested[key] = struct{}{}
	}

	partyID = uuid.Canonical(partyID)
	unlock, err := s.locks.Acquire(ctx, partyID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	defer unlock()

	var orders []models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		party, err := findParty(tx, partyID, true)
		if err != nil {
			return err
		}

		active := activeOrders(tx, party.ID, orderType)

		var activeIDs []string
		if err := active.Pluck("id", &activeIDs).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if len(activeIDs) != len(requested) {
			return apperrors.WithMessage(apperrors.ErrValidation,
				fmt.Sprintf("expected %d active order ids, got %d", len(activeIDs), len(orderedIDs)))
		}
		for _, id := range activeIDs {
			if _, ok := requested[id]; !ok {
				return apperrors.WithMessage(apperrors.ErrValidation,
					fmt.Sprintf("active order %s missing from the new order", id))
			}
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&models.Order{}).
				Where("id = ?", uuid.Canonical(id)).
				Update("priority", i).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
		}

		if err := activeOrders(tx, party.ID, orderType).
			Scopes(preloadLineItems).
			Order("priority ASC").Order("created_at ASC").
			Find(&orders).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	logger.Get().Infow("orders reordered",
		"party_id", partyID,
		"order_type", orderType,
		"count", len(orders),
	)
	return orders, nil
}

func activeOrders(tx *gorm.DB, partyID string, orderType models.OrderType) *gorm.DB {
	return tx.Model(&models.Order{}).
		Where("party_id = ? AND order_type = ? AND status <> ?", partyID, orderType, models.OrderStatusCompleted)
}
