package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxCurrencyRepository struct {
	*BaseRepository
}

func newPgxCurrencyRepository(base *BaseRepository) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{BaseRepository: base}
}

var _ portsrepo.CurrencyReader = (*PgxCurrencyRepository)(nil)

func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `SELECT currency_code, symbol, name, precision FROM currencies WHERE currency_code = $1`
	rows, err := r.getQueryer(ctx).Query(ctx, query, currencyCode)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currency", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, mapError(err, "currency "+currencyCode)
	}
	c := mapping.ToDomainCurrency(m)
	return &c, nil
}

// SaveCurrency inserts or updates a currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		INSERT INTO currencies (currency_code, symbol, name, precision)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (currency_code) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			name = EXCLUDED.name,
			precision = EXCLUDED.precision
	`
	_, err := r.getQueryer(ctx).Exec(ctx, query, m.CurrencyCode, m.Symbol, m.Name, m.Precision)
	return mapError(err, "save currency "+m.CurrencyCode)
}
