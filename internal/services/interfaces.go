package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
)

// PartyServicer defines the contract for party-related business logic.
type PartyServicer interface {
	CreateParty(ctx context.Context, name, contact string) (*models.Party, error)
	GetParty(ctx context.Context, partyID string) (*models.Party, error)
	ListParties(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Party], error)
}

// ProductServicer defines the contract for the product catalogue.
type ProductServicer interface {
	CreateProduct(ctx context.Context, name string, price, weight decimal.Decimal, description string) (*models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListProducts(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error)
}

// LineItemInput is a requested order line. Only the product reference and
// quantity are taken from the caller; name, price and weight come from the
// product catalogue.
type LineItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// OrderFilter holds optional filter parameters for listing orders.
type OrderFilter struct {
	PartyID   *string
	OrderType *models.OrderType
	Status    *models.OrderStatus
}

// OrderServicer defines the contract for the order lifecycle.
type OrderServicer interface {
	CreateOrder(ctx context.Context, partyID string, orderType models.OrderType, items []LineItemInput, referenceOrderID *string) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Order], error)
	TransitionStatus(ctx context.Context, orderID string, target models.OrderStatus) (*models.Order, error)
	Reorder(ctx context.Context, partyID string, orderType models.OrderType, orderedIDs []string) ([]models.Order, error)
}

// TransactionFilter holds optional filter parameters for listing ledger entries.
type TransactionFilter struct {
	PartyID *string
}

// MaterialTransactionServicer records and lists the ledger entries derived from orders.
type MaterialTransactionServicer interface {
	RecordForOrder(tx *gorm.DB, party *models.Party, order *models.Order) (*models.MaterialTransaction, error)
	ListMaterialTransactions(ctx context.Context, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.MaterialTransaction], error)
}

// FinancialTransactionServicer records and lists manual payments and receipts.
type FinancialTransactionServicer interface {
	Record(ctx context.Context, partyID string, amount decimal.Decimal, paymentType models.PaymentType, paymentMethod models.PaymentMethod, description string) (*models.FinancialTransaction, error)
	ListFinancialTransactions(ctx context.Context, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.FinancialTransaction], error)
}

// BalanceSummary is a party balance broken down by transaction stream.
type BalanceSummary struct {
	PartyID        string                  `json:"party_id"`
	MaterialTotal  decimal.Decimal         `json:"material_total"`
	Receipts       decimal.Decimal         `json:"receipts"`
	Payments       decimal.Decimal         `json:"payments"`
	Balance        decimal.Decimal         `json:"balance"`
	Direction      models.BalanceDirection `json:"direction"`
	MaterialCount  int                     `json:"material_count"`
	FinancialCount int                     `json:"financial_count"`
}

// BalanceServicer derives party balances from the two transaction streams.
type BalanceServicer interface {
	ComputeBalance(ctx context.Context, partyID string) (*BalanceSummary, error)
	ReconcileBalance(ctx context.Context, partyID string) (*models.Party, error)
	RefreshPartyBalance(tx *gorm.DB, party *models.Party) error
}
