package models

import "github.com/shopspring/decimal"

// Money, weight and quantity columns are numeric(20,4).
const (
	ColumnScale         = 4
	ColumnIntegerDigits = 16
)

var columnLimit = decimal.New(1, ColumnIntegerDigits)

// FitsColumn reports whether d is stored in a numeric(20,4) column exactly,
// with no rounding of its fraction and no overflow of its integer part.
func FitsColumn(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(ColumnScale)) && d.Abs().LessThan(columnLimit)
}
