// Package server assembles the services, handlers and middleware into the
// HTTP router.
package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"ledgerbook/internal/config"
	"ledgerbook/internal/handlers"
	"ledgerbook/internal/middleware"
	"ledgerbook/internal/services"
	"ledgerbook/internal/validator"

	_ "ledgerbook/internal/docs" // Import swagger docs
)

// Services bundles the ledger services sharing one database and one set of
// party locks.
type Services struct {
	Parties   services.PartyServicer
	Products  services.ProductServicer
	Orders    services.OrderServicer
	Material  services.MaterialTransactionServicer
	Financial services.FinancialTransactionServicer
	Balances  services.BalanceServicer
}

// NewServices wires the ledger services on db.
func NewServices(db *gorm.DB) *Services {
	locks := services.NewPartyLocks()
	material := services.NewMaterialTransactionService(db)
	balances := services.NewBalanceService(db, locks)

	return &Services{
		Parties:   services.NewPartyService(db),
		Products:  services.NewProductService(db),
		Orders:    services.NewOrderService(db, locks, material, balances),
		Material:  material,
		Financial: services.NewFinancialTransactionService(db, locks, balances),
		Balances:  balances,
	}
}

// NewRouter builds the Gin engine serving the ledger API.
func NewRouter(cfg *config.Config, db *gorm.DB, svc *Services) (*gin.Engine, error) {
	validator.Register()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}

	healthHandler := handlers.NewHealthHandler(db)
	partyHandler := handlers.NewPartyHandler(svc.Parties, svc.Balances)
	productHandler := handlers.NewProductHandler(svc.Products)
	orderHandler := handlers.NewOrderHandler(svc.Orders)
	transactionHandler := handlers.NewTransactionHandler(svc.Material, svc.Financial)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(rateLimiter))
	v1.GET("/health", healthHandler.Health)

	parties := v1.Group("/parties")
	parties.POST("", partyHandler.CreateParty)
	parties.GET("", partyHandler.ListParties)
	parties.GET("/:id", partyHandler.GetParty)
	parties.GET("/:id/balance", partyHandler.GetBalance)
	parties.POST("/:id/balance/reconcile", partyHandler.ReconcileBalance)

	products := v1.Group("/products")
	products.POST("", productHandler.CreateProduct)
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)

	orders := v1.Group("/orders")
	orders.POST("", orderHandler.CreateOrder)
	orders.GET("", orderHandler.ListOrders)
	orders.POST("/reorder", orderHandler.ReorderOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)

	v1.GET("/material-transactions", transactionHandler.ListMaterialTransactions)
	v1.POST("/financial-transactions", transactionHandler.CreateFinancialTransaction)
	v1.GET("/financial-transactions", transactionHandler.ListFinancialTransactions)

	return router, nil
}
