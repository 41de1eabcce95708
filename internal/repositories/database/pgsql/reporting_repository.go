package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ledgerStatuses are the journal statuses whose lines count towards balances.
const ledgerStatuses = `j.status IN ('POSTED', 'REVERSED')`

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	*BaseRepository
}

func newReportingRepository(base *BaseRepository) *reportingRepository {
	return &reportingRepository{BaseRepository: base}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// SumPostedLinesByAccount groups ledger lines of an entity by account.
func (r *reportingRepository) SumPostedLinesByAccount(ctx context.Context, q domain.LineSumQuery) ([]domain.AccountTotals, error) {
	conditions := []string{"j.entity_id = $1", ledgerStatuses}
	args := []any{q.EntityID}
	if q.BookID != "" {
		args = append(args, q.BookID)
		conditions = append(conditions, fmt.Sprintf("l.book_id = $%d", len(args)))
	}
	if q.AccountID != "" {
		args = append(args, q.AccountID)
		conditions = append(conditions, fmt.Sprintf("l.account_id = $%d", len(args)))
	}
	switch {
	case q.Period != "":
		args = append(args, q.Period)
		conditions = append(conditions, fmt.Sprintf("j.period <= $%d", len(args)))
	case q.AsOf != nil:
		args = append(args, *q.AsOf)
		conditions = append(conditions, fmt.Sprintf("j.journal_date <= $%d::date", len(args)))
	}

	query := `
		SELECT
			l.account_id,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY l.account_id
		ORDER BY l.account_id
	`
	rows, err := r.getQueryer(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account totals: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountTotals])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect account totals", err)
	}

	out := make([]domain.AccountTotals, len(ms))
	for i, m := range ms {
		out[i] = domain.AccountTotals{AccountID: m.AccountID, Debit: m.Debit, Credit: m.Credit}
	}
	return out, nil
}

const ledgerLineColumns = `
	j.journal_id, j.journal_number, j.journal_date, j.description AS journal_description,
	l.line_id, l.book_id, l.line_number, l.description, l.reference, l.debit, l.credit,
	l.currency_code, l.department_id, l.project_id, l.customer_id
`

const ledgerOrder = `ORDER BY j.journal_date, l.line_number, j.journal_number, l.book_id`

// ledgerFilter returns the WHERE clause shared by the account ledger queries. A nil from
// leaves the range open at the start.
func ledgerFilter(q domain.AccountLedgerQuery, from *time.Time) (string, []any) {
	conditions := []string{"l.account_id = $1", ledgerStatuses}
	args := []any{q.AccountID}
	if q.BookID != "" {
		args = append(args, q.BookID)
		conditions = append(conditions, fmt.Sprintf("l.book_id = $%d", len(args)))
	}
	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("j.journal_date >= $%d::date", len(args)))
	}
	if q.To != nil {
		args = append(args, *q.To)
		conditions = append(conditions, fmt.Sprintf("j.journal_date <= $%d::date", len(args)))
	}
	return strings.Join(conditions, " AND "), args
}

func (r *reportingRepository) ListAccountLedgerLines(ctx context.Context, q domain.AccountLedgerQuery) ([]domain.LedgerEntry, error) {
	where, args := ledgerFilter(q, q.From)
	var limit any // NULL means no limit
	if q.Limit > 0 {
		limit = q.Limit
	}
	args = append(args, limit, q.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE %s
		%s
		LIMIT $%d OFFSET $%d
	`, ledgerLineColumns, where, ledgerOrder, len(args)-1, len(args))

	rows, err := r.getQueryer(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account ledger: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect account ledger rows", err)
	}

	entries := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainLedgerEntry(m)
	}
	return entries, nil
}

// SumAccountLedgerBefore adds every line dated before q.From to the first q.Offset lines
// of the requested range.
func (r *reportingRepository) SumAccountLedgerBefore(ctx context.Context, q domain.AccountLedgerQuery) (decimal.Decimal, error) {
	total := decimal.Zero
	db := r.getQueryer(ctx)

	if q.From != nil {
		where, args := ledgerFilter(domain.AccountLedgerQuery{AccountID: q.AccountID, BookID: q.BookID}, nil)
		args = append(args, *q.From)
		query := fmt.Sprintf(`
			SELECT COALESCE(SUM(l.debit - l.credit), 0)
			FROM journal_lines l
			JOIN journals j ON j.journal_id = l.journal_id
			WHERE %s AND j.journal_date < $%d::date
		`, where, len(args))
		var before decimal.Decimal
		if err := db.QueryRow(ctx, query, args...).Scan(&before); err != nil {
			return decimal.Zero, fmt.Errorf("error summing ledger before range: %w", err)
		}
		total = total.Add(before)
	}

	if q.Offset > 0 {
		where, args := ledgerFilter(q, q.From)
		args = append(args, q.Offset)
		query := fmt.Sprintf(`
			SELECT COALESCE(SUM(t.debit - t.credit), 0)
			FROM (
				SELECT l.debit, l.credit
				FROM journal_lines l
				JOIN journals j ON j.journal_id = l.journal_id
				WHERE %s
				%s
				LIMIT $%d
			) t
		`, where, ledgerOrder, len(args))
		var skipped decimal.Decimal
		if err := db.QueryRow(ctx, query, args...).Scan(&skipped); err != nil {
			return decimal.Zero, fmt.Errorf("error summing skipped ledger rows: %w", err)
		}
		total = total.Add(skipped)
	}
	return total, nil
}
