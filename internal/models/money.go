package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// amountLimit is the smallest value exceeding the decimal(10,2) range.
var amountLimit = decimal.New(1, AmountMaxDigits-AmountScale) // 10^8

// ErrInvalidAmount is returned for amounts that are not valid 2-decimal
// monetary values within the decimal(10,2) range.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// ParseAmount parses a monetary value from its string form. It accepts at
// most two fractional digits and rejects values outside the decimal(10,2)
// range. Parsing from strings keeps amounts exact; they must never pass
// through a binary float.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateAmount checks that d fits the decimal(10,2) amount contract.
func ValidateAmount(d decimal.Decimal) error {
	if d.Exponent() < -AmountScale {
		return ErrInvalidAmount
	}
	if d.Abs().GreaterThanOrEqual(amountLimit) {
		return ErrInvalidAmount
	}
	return nil
}
