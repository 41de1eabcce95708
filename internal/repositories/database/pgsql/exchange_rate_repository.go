package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxExchangeRateRepository struct {
	*BaseRepository
}

func newPgxExchangeRateRepository(base *BaseRepository) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: base}
}

var _ portsrepo.FxRateReader = (*PgxExchangeRateRepository)(nil)

// FindLatestFxRate returns the newest rate for the pair effective on or before asOf.
func (r *PgxExchangeRateRepository) FindLatestFxRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.FxRate, error) {
	query := `
		SELECT rate_id, from_currency, to_currency, rate, effective_date
		FROM fx_rates
		WHERE from_currency = $1 AND to_currency = $2 AND effective_date <= $3::date
		ORDER BY effective_date DESC
		LIMIT 1
	`
	rows, err := r.getQueryer(ctx).Query(ctx, query, fromCurrency, toCurrency, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query exchange rate", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.FxRate])
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("exchange rate %s/%s on %s", fromCurrency, toCurrency, asOf.Format(time.DateOnly)))
	}
	rate := mapping.ToDomainFxRate(m)
	rate.EffectiveDate = rate.EffectiveDate.UTC()
	return &rate, nil
}

// SaveFxRate inserts a rate, replacing any rate already effective on the same date for the pair.
func (r *PgxExchangeRateRepository) SaveFxRate(ctx context.Context, rate domain.FxRate) error {
	m := mapping.ToModelFxRate(rate)
	query := `
		INSERT INTO fx_rates (rate_id, from_currency, to_currency, rate, effective_date)
		VALUES ($1, $2, $3, $4, $5::date)
		ON CONFLICT (from_currency, to_currency, effective_date) DO UPDATE SET
			rate = EXCLUDED.rate
	`
	_, err := r.getQueryer(ctx).Exec(ctx, query, m.RateID, m.FromCurrency, m.ToCurrency, m.Rate, m.EffectiveDate)
	return mapError(err, "save exchange rate "+m.RateID)
}
