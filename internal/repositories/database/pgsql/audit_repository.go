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

type PgxAuditLogRepository struct {
	*BaseRepository
}

func newPgxAuditLogRepository(base *BaseRepository) *PgxAuditLogRepository {
	return &PgxAuditLogRepository{BaseRepository: base}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

func (r *PgxAuditLogRepository) InsertAuditLog(ctx context.Context, entry domain.AuditLog) error {
	m, err := mapping.ToModelAuditLog(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit values", err)
	}
	query := `
		INSERT INTO audit_logs (audit_id, entity_id, journal_id, action, actor_id, old_values, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8)
	`
	_, err = r.getQueryer(ctx).Exec(ctx, query,
		m.AuditID, m.EntityID, m.JournalID, m.Action, m.ActorID, nullableJSON(m.OldValues), nullableJSON(m.NewValues), m.CreatedAt,
	)
	return mapError(err, "insert audit log "+m.AuditID)
}

// ListAuditLogs returns the trail of a journal in insertion order.
func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, journalID string) ([]domain.AuditLog, error) {
	query := `
		SELECT audit_id, entity_id, journal_id, action, actor_id, old_values, new_values, created_at
		FROM audit_logs
		WHERE journal_id = $1
		ORDER BY audit_seq
	`
	rows, err := r.getQueryer(ctx).Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit logs", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditLog])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect audit log rows", err)
	}

	out := make([]domain.AuditLog, 0, len(ms))
	for _, m := range ms {
		entry, err := mapping.ToDomainAuditLog(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode audit values", err)
		}
		out = append(out, entry)
	}
	return out, nil
}

// nullableJSON sends nil documents as SQL NULL instead of an empty string.
func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
