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

type PgxAccountRepository struct {
	*BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(base *BaseRepository) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: base}
}

// Ensure PgxAccountRepository implements portsrepo.AccountReader
var _ portsrepo.AccountReader = (*PgxAccountRepository)(nil)

var FULL_ACCOUNT_SELECT_QUERY = `
SELECT
	a.account_id, a.entity_id, a.code, a.name, a.account_type, a.parent_account_id, a.is_active,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM accounts a
`

// getAccounts runs FULL_ACCOUNT_SELECT_QUERY with the given filter.
func (r *PgxAccountRepository) getAccounts(ctx context.Context, filterQuery string, args ...any) ([]domain.Account, error) {
	rows, err := r.getQueryer(ctx).Query(ctx, FULL_ACCOUNT_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect account rows", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	accounts, err := r.getAccounts(ctx, " WHERE a.account_id = $1", accountID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &accounts[0], nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) ([]domain.Account, error) {
	if len(accountIDs) == 0 {
		return []domain.Account{}, nil
	}
	return r.getAccounts(ctx, " WHERE a.entity_id = $1 AND a.account_id = ANY($2) ORDER BY a.code", entityID, accountIDs)
}

func (r *PgxAccountRepository) ListAccountsByEntity(ctx context.Context, entityID string) ([]domain.Account, error) {
	return r.getAccounts(ctx, " WHERE a.entity_id = $1 ORDER BY a.code", entityID)
}

// SaveAccount inserts or updates an account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (
			account_id, entity_id, code, name, account_type, parent_account_id, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (account_id) DO UPDATE SET
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			account_type = EXCLUDED.account_type,
			parent_account_id = EXCLUDED.parent_account_id,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
	`
	_, err := r.getQueryer(ctx).Exec(ctx, query,
		m.AccountID, m.EntityID, m.Code, m.Name, string(m.AccountType), m.ParentAccountID, m.IsActive,
		nowIfZero(m.CreatedAt), m.CreatedBy, nowIfZero(m.LastUpdatedAt), m.LastUpdatedBy,
	)
	return mapError(err, "save account "+m.AccountID)
}
