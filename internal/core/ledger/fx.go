package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrRateNotFound is returned when no rate is effective for a currency pair on a date.
var ErrRateNotFound = errors.New("fx rate not found")

// RateReader finds the most recent rate for a pair with EffectiveDate <= asOf.
// Implementations return an error wrapping apperrors.ErrNotFound when none exists.
type RateReader interface {
	FindLatestFxRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.FxRate, error)
}

// Conversion is the result of converting one amount.
type Conversion struct {
	Original  decimal.Decimal
	Amount    decimal.Decimal // In the target currency, rounded to its precision
	Rate      decimal.Decimal
	Converted bool // False when from == to
}

// FxResolver converts transaction-currency amounts into an entity's base currency.
type FxResolver struct {
	rates RateReader
}

// NewFxResolver creates a resolver backed by rates.
func NewFxResolver(rates RateReader) *FxResolver {
	return &FxResolver{rates: rates}
}

// Convert multiplies amount by the latest rate effective on asOf and rounds half-up
// (away from zero) to precision decimal places.
func (r *FxResolver) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time, precision int32) (Conversion, error) {
	if from == to {
		return Conversion{Original: amount, Amount: amount, Rate: decimal.NewFromInt(1)}, nil
	}
	rate, err := r.rates.FindLatestFxRate(ctx, from, to, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return Conversion{}, fmt.Errorf("%w: %s->%s on %s", ErrRateNotFound, from, to, asOf.Format(time.DateOnly))
		}
		return Conversion{}, fmt.Errorf("failed to look up fx rate %s->%s: %w", from, to, err)
	}
	if rate == nil || !rate.Rate.IsPositive() {
		return Conversion{}, fmt.Errorf("%w: %s->%s on %s has no positive rate", ErrRateNotFound, from, to, asOf.Format(time.DateOnly))
	}
	return Conversion{
		Original:  amount,
		Amount:    amount.Mul(rate.Rate).Round(precision),
		Rate:      rate.Rate,
		Converted: true,
	}, nil
}
