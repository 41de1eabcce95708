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

type PgxEntityRepository struct {
	*BaseRepository
}

// newPgxEntityRepository creates a new repository for entities and their ledger books.
func newPgxEntityRepository(base *BaseRepository) *PgxEntityRepository {
	return &PgxEntityRepository{BaseRepository: base}
}

var (
	_ portsrepo.EntityReader = (*PgxEntityRepository)(nil)
	_ portsrepo.BookReader   = (*PgxEntityRepository)(nil)
)

var FULL_ENTITY_SELECT_QUERY = `
SELECT
	e.entity_id, e.code, e.name, e.base_currency,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
FROM entities e
`

var FULL_BOOK_SELECT_QUERY = `
SELECT
	b.book_id, b.entity_id, b.code, b.name, b.is_active,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
FROM ledger_books b
`

func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	rows, err := r.getQueryer(ctx).Query(ctx, FULL_ENTITY_SELECT_QUERY+" WHERE e.entity_id = $1", entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entity", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Entity])
	if err != nil {
		return nil, mapError(err, "entity "+entityID)
	}
	entity := mapping.ToDomainEntity(m)
	return &entity, nil
}

func (r *PgxEntityRepository) FindBooksByIDs(ctx context.Context, entityID string, bookIDs []string) ([]domain.LedgerBook, error) {
	if len(bookIDs) == 0 {
		return []domain.LedgerBook{}, nil
	}
	rows, err := r.getQueryer(ctx).Query(ctx,
		FULL_BOOK_SELECT_QUERY+" WHERE b.entity_id = $1 AND b.book_id = ANY($2) ORDER BY b.code", entityID, bookIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger books", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerBook])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect ledger book rows", err)
	}
	books := make([]domain.LedgerBook, len(ms))
	for i, m := range ms {
		books[i] = mapping.ToDomainLedgerBook(m)
	}
	return books, nil
}

// SaveEntity inserts or updates an entity.
func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	m := mapping.ToModelEntity(entity)
	query := `
		INSERT INTO entities (
			entity_id, code, name, base_currency,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (entity_id) DO UPDATE SET
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			base_currency = EXCLUDED.base_currency,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
	`
	_, err := r.getQueryer(ctx).Exec(ctx, query,
		m.EntityID, m.Code, m.Name, m.BaseCurrency,
		nowIfZero(m.CreatedAt), m.CreatedBy, nowIfZero(m.LastUpdatedAt), m.LastUpdatedBy,
	)
	return mapError(err, "save entity "+m.EntityID)
}

// SaveBook inserts or updates a ledger book.
func (r *PgxEntityRepository) SaveBook(ctx context.Context, book domain.LedgerBook) error {
	m := mapping.ToModelLedgerBook(book)
	query := `
		INSERT INTO ledger_books (
			book_id, entity_id, code, name, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (book_id) DO UPDATE SET
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
	`
	_, err := r.getQueryer(ctx).Exec(ctx, query,
		m.BookID, m.EntityID, m.Code, m.Name, m.IsActive,
		nowIfZero(m.CreatedAt), m.CreatedBy, nowIfZero(m.LastUpdatedAt), m.LastUpdatedBy,
	)
	return mapError(err, "save ledger book "+m.BookID)
}
