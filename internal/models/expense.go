package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DescriptionMaxLen is the maximum length of an expense description,
	// in characters.
	DescriptionMaxLen = 255

	// AmountMaxDigits and AmountScale define the decimal(10,2) contract
	// for expense amounts: at most 8 integer digits and 2 fractional.
	AmountMaxDigits = 10
	AmountScale     = 2
)

// Expense represents a single recorded expense. Amount is an exact decimal,
// never a binary float. CategoryID is nil for uncategorized expenses.
type Expense struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	CategoryID  *uint           `gorm:"index" json:"category_id,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	Date        time.Time       `gorm:"type:date;not null" json:"date"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
