package models

// Currency is a closed set of display currency codes. The currency is a
// label on rendered amounts only; no conversion ever happens.
type Currency string

const (
	CurrencyPLN Currency = "PLN"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// currencySymbols maps each supported currency code to its display symbol.
var currencySymbols = map[Currency]string{
	CurrencyPLN: "zł",
	CurrencyEUR: "€",
	CurrencyUSD: "$",
	CurrencyGBP: "£",
}

// Valid reports whether c is a supported currency code.
func (c Currency) Valid() bool {
	_, ok := currencySymbols[c]
	return ok
}

// Symbol returns the display symbol for the currency, or an empty string
// for unknown codes.
func (c Currency) Symbol() string {
	return currencySymbols[c]
}

// Language is a closed set of UI language codes.
type Language string

const (
	LanguagePolish  Language = "pl"
	LanguageEnglish Language = "en"
)

// Valid reports whether l is a supported language code.
func (l Language) Valid() bool {
	return l == LanguagePolish || l == LanguageEnglish
}

// Profile defaults for newly created users.
const (
	DefaultCurrency = CurrencyPLN
	DefaultLanguage = LanguagePolish
)

// UserProfile holds per-user display preferences. Exactly one profile
// exists per user; it is created together with the user and backfilled
// lazily for accounts that predate the profile table.
type UserProfile struct {
	Base
	UserID   uint     `gorm:"uniqueIndex;not null" json:"user_id"`
	Currency Currency `gorm:"size:3;not null;default:PLN" json:"currency"`
	Language Language `gorm:"size:5;not null;default:pl" json:"language"`
}

// CurrencySymbol is the derived display symbol for the profile's currency.
func (p *UserProfile) CurrencySymbol() string {
	return p.Currency.Symbol()
}
