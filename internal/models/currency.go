package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `db:"currency_code"` // Primary Key (e.g., "USD")
	Symbol       string `db:"symbol"`        // e.g., "$"
	Name         string `db:"name"`          // e.g., "US Dollar"
	Precision    int16  `db:"precision"`
}

// FxRate stores the conversion rate between two currencies from EffectiveDate on.
type FxRate struct {
	RateID        string          `db:"rate_id"`
	FromCurrency  string          `db:"from_currency"`
	ToCurrency    string          `db:"to_currency"`
	Rate          decimal.Decimal `db:"rate"`
	EffectiveDate time.Time       `db:"effective_date"`
}
