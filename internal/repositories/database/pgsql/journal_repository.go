package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const defaultJournalPageSize = 20

type PgxJournalRepository struct {
	*BaseRepository
}

// newPgxJournalRepository creates a new repository for journals, their lines and the audit trail.
func newPgxJournalRepository(base *BaseRepository) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: base}
}

// Audit entries live in PgxAuditLogRepository; Store composes both into portsrepo.LedgerStore.
var (
	_ portsrepo.JournalReader        = (*PgxJournalRepository)(nil)
	_ portsrepo.JournalWriter        = (*PgxJournalRepository)(nil)
	_ portsrepo.JournalSequenceStore = (*PgxJournalRepository)(nil)
)

var FULL_JOURNAL_SELECT_QUERY = `
SELECT
	j.journal_id, j.entity_id, j.journal_number, j.sequence, j.journal_date, j.period,
	j.journal_type, j.description, j.reference, j.source, j.source_id, j.status,
	j.reversal_of_id, j.approved_at, j.approved_by, j.posted_at, j.posted_by,
	j.created_at, j.created_by, j.last_updated_at, j.last_updated_by
FROM journals j
`

var FULL_JOURNAL_LINE_SELECT_QUERY = `
SELECT
	l.line_id, l.journal_id, l.book_id, l.line_number, l.account_id, l.debit, l.credit,
	l.currency_code, l.amount_original, l.fx_rate, l.department_id, l.project_id, l.customer_id,
	l.subledger_type, l.subledger_id, l.description, l.reference, l.created_at
FROM journal_lines l
`

// InsertJournal saves the header and every line. Outside RunInTx it opens its own transaction.
func (r *PgxJournalRepository) InsertJournal(ctx context.Context, journal domain.Journal) error {
	return r.RunInTx(ctx, func(ctx context.Context) error {
		q := r.getQueryer(ctx)
		m := mapping.ToModelJournal(journal)

		journalQuery := `
			INSERT INTO journals (
				journal_id, entity_id, journal_number, sequence, journal_date, period,
				journal_type, description, reference, source, source_id, status,
				reversal_of_id, approved_at, approved_by, posted_at, posted_by,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		`
		_, err := q.Exec(ctx, journalQuery,
			m.JournalID, m.EntityID, m.JournalNumber, m.Sequence, m.JournalDate, m.Period,
			m.JournalType, m.Description, m.Reference, m.Source, m.SourceID, string(m.Status),
			m.ReversalOfID, m.ApprovedAt, m.ApprovedBy, m.PostedAt, m.PostedBy,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return mapError(err, "insert journal "+m.JournalID)
		}

		if len(journal.Lines) == 0 {
			return nil
		}

		lineQuery := `
			INSERT INTO journal_lines (
				line_id, journal_id, book_id, line_number, account_id, debit, credit,
				currency_code, amount_original, fx_rate, department_id, project_id, customer_id,
				subledger_type, subledger_id, description, reference, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		`
		batch := &pgx.Batch{}
		for _, line := range journal.Lines {
			l := mapping.ToModelJournalLine(line)
			batch.Queue(lineQuery,
				l.LineID, m.JournalID, l.BookID, l.LineNumber, l.AccountID, l.Debit, l.Credit,
				l.CurrencyCode, l.AmountOriginal, l.FxRate, l.DepartmentID, l.ProjectID, l.CustomerID,
				l.SubledgerType, l.SubledgerID, l.Description, l.Reference, l.CreatedAt,
			)
		}

		br := q.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return mapError(err, fmt.Sprintf("insert line %d of journal %s", journal.Lines[i].LineNumber, m.JournalID))
			}
		}
		if err := br.Close(); err != nil {
			return mapError(err, "close journal line batch")
		}
		return nil
	})
}

func (r *PgxJournalRepository) findJournal(ctx context.Context, journalID string, forUpdate bool) (*domain.Journal, error) {
	q := r.getQueryer(ctx)
	query := FULL_JOURNAL_SELECT_QUERY + " WHERE j.journal_id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	rows, err := q.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal", err)
	}
	header, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, mapError(err, "journal "+journalID)
	}

	lineRows, err := q.Query(ctx, FULL_JOURNAL_LINE_SELECT_QUERY+" WHERE l.journal_id = $1 ORDER BY l.book_id, l.line_number", journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	lines, err := pgx.CollectRows(lineRows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect journal line rows", err)
	}

	journal := mapping.ToDomainJournal(header, lines)
	return &journal, nil
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	return r.findJournal(ctx, journalID, false)
}

// FindJournalByIDForUpdate takes a row lock on the journal header for the rest of the transaction.
func (r *PgxJournalRepository) FindJournalByIDForUpdate(ctx context.Context, journalID string) (*domain.Journal, error) {
	if _, ok := txFromContext(ctx); !ok {
		return nil, apperrors.NewAppError(500, "FindJournalByIDForUpdate called outside a transaction", nil)
	}
	return r.findJournal(ctx, journalID, true)
}

func (r *PgxJournalRepository) FindReversalOf(ctx context.Context, journalID string) (*domain.Journal, error) {
	var reversalID string
	err := r.getQueryer(ctx).QueryRow(ctx, `SELECT journal_id FROM journals WHERE reversal_of_id = $1`, journalID).Scan(&reversalID)
	if err != nil {
		return nil, mapError(err, "reversal of journal "+journalID)
	}
	return r.findJournal(ctx, reversalID, false)
}

// ListJournals pages through journal headers newest first using a keyset cursor.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}

	conditions := []string{"j.entity_id = $1"}
	args := []any{filter.EntityID}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("j.status = $%d", len(args)))
	}
	if filter.Period != "" {
		args = append(args, filter.Period)
		conditions = append(conditions, fmt.Sprintf("j.period = $%d", len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeJournalCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: " + err.Error())
		}
		args = append(args, cursor.JournalDate, cursor.CreatedAt, cursor.JournalID)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(j.journal_date, j.created_at, j.journal_id) < ($%d::date, $%d, $%d)", n-2, n-1, n))
	}
	args = append(args, limit+1)

	query := FULL_JOURNAL_SELECT_QUERY +
		" WHERE " + strings.Join(conditions, " AND ") +
		fmt.Sprintf(" ORDER BY j.journal_date DESC, j.created_at DESC, j.journal_id DESC LIMIT $%d", len(args))

	rows, err := r.getQueryer(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to collect journal rows", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		token := pagination.EncodeJournalCursor(pagination.JournalCursor{
			JournalDate: last.JournalDate.UTC(), CreatedAt: last.CreatedAt, JournalID: last.JournalID,
		})
		next = &token
	}

	journals := make([]domain.Journal, len(ms))
	for i, m := range ms {
		journals[i] = mapping.ToDomainJournal(m, nil)
		journals[i].Lines = nil
	}
	return journals, next, nil
}

// LockJournalSequence takes a transaction scoped advisory lock on (entity, period) so that
// MaxJournalSequence and the following insert run one at a time per period.
func (r *PgxJournalRepository) LockJournalSequence(ctx context.Context, entityID, period string) error {
	tx, ok := txFromContext(ctx)
	if !ok {
		return apperrors.NewAppError(500, "LockJournalSequence called outside a transaction", nil)
	}
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "journal_seq:"+entityID+":"+period)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock journal sequence", err)
	}
	return nil
}

func (r *PgxJournalRepository) MaxJournalSequence(ctx context.Context, entityID, period string) (int, error) {
	var maxSeq int
	err := r.getQueryer(ctx).QueryRow(ctx,
		`SELECT COALESCE(MAX(sequence), 0) FROM journals WHERE entity_id = $1 AND period = $2`,
		entityID, period,
	).Scan(&maxSeq)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to read journal sequence", err)
	}
	return maxSeq, nil
}

// TransitionJournalStatus updates the status only while it is still one of t.From.
func (r *PgxJournalRepository) TransitionJournalStatus(ctx context.Context, t domain.StatusTransition) error {
	q := r.getQueryer(ctx)
	query := `
		UPDATE journals SET
			status = $2,
			approved_at = COALESCE($3, approved_at),
			approved_by = COALESCE($4, approved_by),
			posted_at = COALESCE($5, posted_at),
			posted_by = COALESCE($6, posted_by),
			last_updated_at = $7,
			last_updated_by = $8
		WHERE journal_id = $1 AND status = ANY($9)
	`
	tag, err := q.Exec(ctx, query,
		t.JournalID, string(t.To), t.ApprovedAt, t.ApprovedBy, t.PostedAt, t.PostedBy,
		t.UpdatedAt, t.UpdatedBy, statusStrings(t.From),
	)
	if err != nil {
		return mapError(err, "update journal status "+t.JournalID)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = q.QueryRow(ctx, `SELECT status FROM journals WHERE journal_id = $1`, t.JournalID).Scan(&current)
	if err != nil {
		return mapError(err, "journal "+t.JournalID)
	}
	return fmt.Errorf("journal %s is %s: %w", t.JournalID, current, apperrors.ErrConflict)
}
