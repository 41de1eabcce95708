package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodLockPolicy decides whether a period is closed for posting in a book.
type PeriodLockPolicy interface {
	IsLocked(ctx context.Context, entityID, bookID, period string) (bool, error)
}

// ApprovalPolicy decides whether a journal needs approval before it can be posted.
type ApprovalPolicy interface {
	RequiresApproval(ctx context.Context, journal domain.Journal) (bool, error)
}

// OpenPeriods never locks anything.
type OpenPeriods struct{}

func (OpenPeriods) IsLocked(context.Context, string, string, string) (bool, error) {
	return false, nil
}

const anyBook = "*"

// StaticPeriodLocks is a fixed set of locked (entity, book, period) keys.
type StaticPeriodLocks struct {
	locked map[string]struct{}
}

// NewStaticPeriodLocks parses locks of the form entity:book:YYYY-MM, where book may be "*".
func NewStaticPeriodLocks(locks []string) (*StaticPeriodLocks, error) {
	p := &StaticPeriodLocks{locked: make(map[string]struct{})}
	for _, raw := range locks {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || !domain.ValidPeriod(parts[2]) {
			return nil, fmt.Errorf("invalid period lock %q, want entity:book:YYYY-MM", entry)
		}
		p.locked[lockKey(parts[0], parts[1], parts[2])] = struct{}{}
	}
	return p, nil
}

func lockKey(entityID, bookID, period string) string {
	return entityID + ":" + bookID + ":" + period
}

func (p *StaticPeriodLocks) IsLocked(_ context.Context, entityID, bookID, period string) (bool, error) {
	if _, ok := p.locked[lockKey(entityID, bookID, period)]; ok {
		return true, nil
	}
	_, ok := p.locked[lockKey(entityID, anyBook, period)]
	return ok, nil
}

// ThresholdApproval requires approval when the journal's total exceeds Threshold.
// The total is the sum of max(debit, credit) over one book's copy of the lines.
type ThresholdApproval struct {
	Threshold decimal.Decimal
}

func (p ThresholdApproval) RequiresApproval(_ context.Context, journal domain.Journal) (bool, error) {
	return JournalTotal(journal).GreaterThan(p.Threshold), nil
}

// JournalTotal sums max(debit, credit) over the journal's logical lines.
func JournalTotal(journal domain.Journal) decimal.Decimal {
	total := decimal.Zero
	for _, l := range journal.LogicalLines() {
		total = total.Add(l.Amount())
	}
	return total
}
