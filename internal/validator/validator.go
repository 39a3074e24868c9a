// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ledgerbook/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the ledger validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("order_type", validateOrderType)
	_ = v.RegisterValidation("order_status", validateOrderStatus)
	_ = v.RegisterValidation("payment_type", validatePaymentType)
	_ = v.RegisterValidation("payment_method", validatePaymentMethod)
}

func validateOrderType(fl validator.FieldLevel) bool {
	return models.OrderType(fl.Field().String()).Valid()
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	return models.OrderStatus(fl.Field().String()).Valid()
}

func validatePaymentType(fl validator.FieldLevel) bool {
	return models.PaymentType(fl.Field().String()).Valid()
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return models.PaymentMethod(fl.Field().String()).Valid()
}
