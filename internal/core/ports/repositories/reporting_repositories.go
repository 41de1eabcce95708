package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-only aggregations over lines of POSTED journals.
type ReportingRepository interface {
	// SumPostedLinesByAccount groups posted lines by account. Period (<=) takes precedence over AsOf.
	SumPostedLinesByAccount(ctx context.Context, q domain.LineSumQuery) ([]domain.AccountTotals, error)

	// ListAccountLedgerLines returns posted lines of one account ordered by journal date then
	// line number, limited by q.Limit and q.Offset. RunningBalance is left zero.
	ListAccountLedgerLines(ctx context.Context, q domain.AccountLedgerQuery) ([]domain.LedgerEntry, error)

	// SumAccountLedgerBefore returns sum(debit - credit) of every posted line ordered before
	// the first row ListAccountLedgerLines would return for q.
	SumAccountLedgerBefore(ctx context.Context, q domain.AccountLedgerQuery) (decimal.Decimal, error)
}
