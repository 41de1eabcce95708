package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyPrecision is used when a currency row does not declare one.
const DefaultCurrencyPrecision int32 = 2

// Currency represents a monetary unit and the number of decimal places it is booked in.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // ISO 4217
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int32  `json:"precision"`
}

// FxRate maps one unit of FromCurrency to Rate units of ToCurrency, effective from EffectiveDate.
type FxRate struct {
	RateID        string          `json:"rateID"`
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effectiveDate"`
}
