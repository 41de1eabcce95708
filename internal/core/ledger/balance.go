// Package ledger holds the pure bookkeeping rules of the posting engine: balance
// validation, currency conversion, journal numbering and the policy hooks the
// engine consults before posting.
package ledger

import (
	"sort"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceLine is the minimal view of a line the balance check needs.
type BalanceLine struct {
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	CurrencyCode string
}

// BalanceResult is the outcome of ValidateBalance.
type BalanceResult struct {
	Balanced    bool
	Differences map[string]decimal.Decimal // debit - credit per currency, zero entries included
}

// Unbalanced returns only the currencies whose difference is not zero.
func (r BalanceResult) Unbalanced() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for ccy, diff := range r.Differences {
		if !diff.IsZero() {
			out[ccy] = diff
		}
	}
	return out
}

// Currencies returns the currencies seen, sorted.
func (r BalanceResult) Currencies() []string {
	out := make([]string, 0, len(r.Differences))
	for ccy := range r.Differences {
		out = append(out, ccy)
	}
	sort.Strings(out)
	return out
}

// ValidateBalance groups lines by currency and checks that debits equal credits exactly.
func ValidateBalance(lines []BalanceLine) BalanceResult {
	diffs := make(map[string]decimal.Decimal)
	for _, l := range lines {
		diffs[l.CurrencyCode] = diffs[l.CurrencyCode].Add(l.Debit).Sub(l.Credit)
	}
	balanced := true
	for _, d := range diffs {
		if !d.IsZero() {
			balanced = false
			break
		}
	}
	return BalanceResult{Balanced: balanced, Differences: diffs}
}

// BalanceLinesOf adapts stored journal lines for ValidateBalance.
func BalanceLinesOf(lines []domain.JournalLine) []BalanceLine {
	out := make([]BalanceLine, len(lines))
	for i, l := range lines {
		out[i] = BalanceLine{Debit: l.Debit, Credit: l.Credit, CurrencyCode: l.CurrencyCode}
	}
	return out
}

// ValidateJournalBooks runs ValidateBalance on each book's copy of the lines and merges
// the differences of every unbalanced book.
func ValidateJournalBooks(j domain.Journal) BalanceResult {
	merged := BalanceResult{Balanced: true, Differences: make(map[string]decimal.Decimal)}
	for _, bookID := range j.BookIDs() {
		res := ValidateBalance(BalanceLinesOf(j.LinesByBook()[bookID]))
		for ccy, d := range res.Differences {
			if existing, ok := merged.Differences[ccy]; !ok || existing.IsZero() {
				merged.Differences[ccy] = d
			}
		}
		if !res.Balanced {
			merged.Balanced = false
		}
	}
	return merged
}
