package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
)

// checkStorable rejects values a numeric(20,4) column would round or
// overflow.
func checkStorable(field string, d decimal.Decimal) error {
	if models.FitsColumn(d) {
		return nil
	}
	return apperrors.WithMessage(apperrors.ErrValidation,
		fmt.Sprintf("%s must have at most %d decimal places and %d integer digits",
			field, models.ColumnScale, models.ColumnIntegerDigits))
}
