package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) SumPostedLinesByAccount(ctx context.Context, q domain.LineSumQuery) ([]domain.AccountTotals, error) {
	sums := make(map[string]*domain.AccountTotals)
	err := s.read(ctx, func(st *state) error {
		for _, j := range st.journals {
			if j.EntityID != q.EntityID || !j.Status.AffectsLedger() {
				continue
			}
			switch {
			case q.Period != "":
				if j.Period > q.Period {
					continue
				}
			case q.AsOf != nil:
				if j.JournalDate.After(*q.AsOf) {
					continue
				}
			}
			for _, l := range j.Lines {
				if q.BookID != "" && l.BookID != q.BookID {
					continue
				}
				if q.AccountID != "" && l.AccountID != q.AccountID {
					continue
				}
				t, ok := sums[l.AccountID]
				if !ok {
					t = &domain.AccountTotals{AccountID: l.AccountID, Debit: decimal.Zero, Credit: decimal.Zero}
					sums[l.AccountID] = t
				}
				t.Debit = t.Debit.Add(l.Debit)
				t.Credit = t.Credit.Add(l.Credit)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.AccountTotals, 0, len(sums))
	for _, t := range sums {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

// ledgerLines returns every ledger-affecting line of q.AccountID up to q.To, in ledger order.
func (s *Store) ledgerLines(ctx context.Context, q domain.AccountLedgerQuery) ([]domain.LedgerEntry, error) {
	var out []domain.LedgerEntry
	err := s.read(ctx, func(st *state) error {
		for _, j := range st.journals {
			if !j.Status.AffectsLedger() {
				continue
			}
			if q.To != nil && j.JournalDate.After(*q.To) {
				continue
			}
			for _, l := range j.Lines {
				if l.AccountID != q.AccountID || (q.BookID != "" && l.BookID != q.BookID) {
					continue
				}
				out = append(out, domain.LedgerEntry{
					JournalID:          j.JournalID,
					JournalNumber:      j.JournalNumber,
					JournalDate:        j.JournalDate,
					JournalDescription: j.Description,
					LineID:             l.LineID,
					BookID:             l.BookID,
					LineNumber:         l.LineNumber,
					Description:        l.Description,
					Reference:          l.Reference,
					Debit:              l.Debit,
					Credit:             l.Credit,
					CurrencyCode:       l.CurrencyCode,
					Dimensions:         l.Dimensions,
				})
			}
		}
		return nil
	})
	sort.Slice(out, func(a, b int) bool {
		ea, eb := out[a], out[b]
		if !ea.JournalDate.Equal(eb.JournalDate) {
			return ea.JournalDate.Before(eb.JournalDate)
		}
		if ea.LineNumber != eb.LineNumber {
			return ea.LineNumber < eb.LineNumber
		}
		if ea.JournalNumber != eb.JournalNumber {
			return ea.JournalNumber < eb.JournalNumber
		}
		return ea.BookID < eb.BookID
	})
	return out, err
}

// splitAtFrom returns the index of the first line dated on or after q.From.
func splitAtFrom(lines []domain.LedgerEntry, q domain.AccountLedgerQuery) int {
	if q.From == nil {
		return 0
	}
	return sort.Search(len(lines), func(i int) bool { return !lines[i].JournalDate.Before(*q.From) })
}

func (s *Store) ListAccountLedgerLines(ctx context.Context, q domain.AccountLedgerQuery) ([]domain.LedgerEntry, error) {
	lines, err := s.ledgerLines(ctx, q)
	if err != nil {
		return nil, err
	}
	start := splitAtFrom(lines, q) + q.Offset
	if start >= len(lines) {
		return []domain.LedgerEntry{}, nil
	}
	end := len(lines)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}
	page := make([]domain.LedgerEntry, end-start)
	copy(page, lines[start:end])
	return page, nil
}

func (s *Store) SumAccountLedgerBefore(ctx context.Context, q domain.AccountLedgerQuery) (decimal.Decimal, error) {
	lines, err := s.ledgerLines(ctx, q)
	if err != nil {
		return decimal.Zero, err
	}
	stop := splitAtFrom(lines, q) + q.Offset
	if stop > len(lines) {
		stop = len(lines)
	}
	sum := decimal.Zero
	for _, l := range lines[:stop] {
		sum = sum.Add(l.Debit).Sub(l.Credit)
	}
	return sum, nil
}
