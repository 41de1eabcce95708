// Package memory provides an in-process LedgerStore used by tests and by the
// STORE_DRIVER=memory development mode.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

// Store keeps reference data and journals in maps. Writers are serialized by the one-slot
// txSem; each transaction works on a copy of the journal state that is swapped in on commit.
type Store struct {
	txSem chan struct{}
	mu    sync.RWMutex

	currencies map[string]domain.Currency
	entities   map[string]domain.Entity
	books      map[string]domain.LedgerBook
	accounts   map[string]domain.Account
	rates      []domain.FxRate

	state *state
}

// state is the transactional part of the store.
type state struct {
	journals map[string]domain.Journal
	audit    []domain.AuditLog
}

func (st *state) clone() *state {
	journals := make(map[string]domain.Journal, len(st.journals))
	for id, j := range st.journals {
		journals[id] = j
	}
	audit := make([]domain.AuditLog, len(st.audit))
	copy(audit, st.audit)
	return &state{journals: journals, audit: audit}
}

type txKey struct{}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		txSem:      make(chan struct{}, 1),
		currencies: make(map[string]domain.Currency),
		entities:   make(map[string]domain.Entity),
		books:      make(map[string]domain.LedgerBook),
		accounts:   make(map[string]domain.Account),
		state:      &state{journals: make(map[string]domain.Journal)},
	}
}

var (
	_ portsrepo.LedgerStore         = (*Store)(nil)
	_ portsrepo.ReferenceDataWriter = (*Store)(nil)
)

// =============================================================================
// TRANSACTIONS
// =============================================================================

// RunInTx executes fn against a private copy of the journal state. The copy replaces the
// committed state only when fn succeeds and ctx is still live. Nested calls join the outer tx.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case s.txSem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("waiting for transaction slot: %w", ctx.Err())
	}
	defer func() { <-s.txSem }()

	s.mu.RLock()
	tx := s.state.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction abandoned before commit: %w", err)
	}

	s.mu.Lock()
	s.state = tx
	s.mu.Unlock()
	return nil
}

// read runs fn against the tx state bound to ctx, or the committed state under a read lock.
func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if tx, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(tx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// write runs fn inside the tx bound to ctx, or inside a new single-statement tx.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if tx, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(tx)
	}
	return s.RunInTx(ctx, func(ctx context.Context) error {
		return fn(ctx.Value(txKey{}).(*state))
	})
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

func (s *Store) SaveCurrency(_ context.Context, currency domain.Currency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currencies[currency.CurrencyCode] = currency
	return nil
}

func (s *Store) SaveEntity(_ context.Context, entity domain.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[entity.EntityID] = entity
	return nil
}

func (s *Store) SaveBook(_ context.Context, book domain.LedgerBook) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[book.BookID] = book
	return nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) SaveFxRate(_ context.Context, rate domain.FxRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rates {
		if r.FromCurrency == rate.FromCurrency && r.ToCurrency == rate.ToCurrency && r.EffectiveDate.Equal(rate.EffectiveDate) {
			s.rates[i] = rate
			return nil
		}
	}
	s.rates = append(s.rates, rate)
	return nil
}

func (s *Store) FindEntityByID(_ context.Context, entityID string) (*domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[entityID]
	if !ok {
		return nil, apperrors.NewNotFoundError("entity " + entityID)
	}
	return &e, nil
}

func (s *Store) FindBooksByIDs(_ context.Context, entityID string, bookIDs []string) ([]domain.LedgerBook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.LedgerBook
	for _, id := range bookIDs {
		if b, ok := s.books[id]; ok && b.EntityID == entityID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &a, nil
}

func (s *Store) FindAccountsByIDs(_ context.Context, entityID string, accountIDs []string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Account
	for _, id := range accountIDs {
		if a, ok := s.accounts[id]; ok && a.EntityID == entityID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) ListAccountsByEntity(_ context.Context, entityID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Account{}
	for _, a := range s.accounts {
		if a.EntityID == entityID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.currencies[currencyCode]
	if !ok {
		return nil, apperrors.NewNotFoundError("currency " + currencyCode)
	}
	return &c, nil
}

func (s *Store) FindLatestFxRate(_ context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.FxRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *domain.FxRate
	for i := range s.rates {
		r := s.rates[i]
		if r.FromCurrency != fromCurrency || r.ToCurrency != toCurrency || r.EffectiveDate.After(asOf) {
			continue
		}
		if best == nil || r.EffectiveDate.After(best.EffectiveDate) {
			best = &r
		}
	}
	if best == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("fx rate %s/%s on %s", fromCurrency, toCurrency, asOf.Format("2006-01-02")))
	}
	return best, nil
}

// =============================================================================
// JOURNALS
// =============================================================================

func copyJournal(j domain.Journal, withLines bool) *domain.Journal {
	out := j
	out.Lines = nil
	if withLines {
		out.Lines = make([]domain.JournalLine, len(j.Lines))
		copy(out.Lines, j.Lines)
	}
	return &out
}

func (s *Store) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	var out *domain.Journal
	err := s.read(ctx, func(st *state) error {
		j, ok := st.journals[journalID]
		if !ok {
			return apperrors.NewNotFoundError("journal " + journalID)
		}
		out = copyJournal(j, true)
		return nil
	})
	return out, err
}

// FindJournalByIDForUpdate is FindJournalByID; writers are already serialized.
func (s *Store) FindJournalByIDForUpdate(ctx context.Context, journalID string) (*domain.Journal, error) {
	return s.FindJournalByID(ctx, journalID)
}

func (s *Store) FindReversalOf(ctx context.Context, journalID string) (*domain.Journal, error) {
	var out *domain.Journal
	err := s.read(ctx, func(st *state) error {
		for _, j := range st.journals {
			if j.ReversalOfID != nil && *j.ReversalOfID == journalID {
				out = copyJournal(j, true)
				return nil
			}
		}
		return apperrors.NewNotFoundError("reversal of journal " + journalID)
	})
	return out, err
}

func (s *Store) ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, *string, error) {
	var cursor *pagination.JournalCursor
	if filter.NextToken != nil && *filter.NextToken != "" {
		c, err := pagination.DecodeJournalCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: " + err.Error())
		}
		cursor = &c
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var matched []domain.Journal
	_ = s.read(ctx, func(st *state) error {
		for _, j := range st.journals {
			if j.EntityID != filter.EntityID {
				continue
			}
			if filter.Status != "" && j.Status != filter.Status {
				continue
			}
			if filter.Period != "" && j.Period != filter.Period {
				continue
			}
			if cursor != nil && !cursor.Before(j.JournalDate, j.CreatedAt, j.JournalID) {
				continue
			}
			matched = append(matched, *copyJournal(j, false))
		}
		return nil
	})

	sort.Slice(matched, func(a, b int) bool {
		ja, jb := matched[a], matched[b]
		if !ja.JournalDate.Equal(jb.JournalDate) {
			return ja.JournalDate.After(jb.JournalDate)
		}
		if !ja.CreatedAt.Equal(jb.CreatedAt) {
			return ja.CreatedAt.After(jb.CreatedAt)
		}
		return ja.JournalID > jb.JournalID
	})

	var next *string
	if len(matched) > limit {
		matched = matched[:limit]
		last := matched[limit-1]
		token := pagination.EncodeJournalCursor(pagination.JournalCursor{
			JournalDate: last.JournalDate, CreatedAt: last.CreatedAt, JournalID: last.JournalID,
		})
		next = &token
	}
	if matched == nil {
		matched = []domain.Journal{}
	}
	return matched, next, nil
}

// LockJournalSequence is a no-op: transactions already run one at a time.
func (s *Store) LockJournalSequence(_ context.Context, _, _ string) error {
	return nil
}

func (s *Store) MaxJournalSequence(ctx context.Context, entityID, period string) (int, error) {
	maxSeq := 0
	err := s.read(ctx, func(st *state) error {
		for _, j := range st.journals {
			if j.EntityID == entityID && j.Period == period && j.Sequence > maxSeq {
				maxSeq = j.Sequence
			}
		}
		return nil
	})
	return maxSeq, err
}

func (s *Store) InsertJournal(ctx context.Context, journal domain.Journal) error {
	return s.write(ctx, func(st *state) error {
		if _, exists := st.journals[journal.JournalID]; exists {
			return fmt.Errorf("journal %s: %w", journal.JournalID, apperrors.ErrDuplicate)
		}
		for _, j := range st.journals {
			if j.EntityID == journal.EntityID && j.JournalNumber == journal.JournalNumber {
				return fmt.Errorf("journal number %s: %w", journal.JournalNumber, apperrors.ErrDuplicate)
			}
			if journal.ReversalOfID != nil && j.ReversalOfID != nil && *j.ReversalOfID == *journal.ReversalOfID {
				return fmt.Errorf("reversal of %s: %w", *journal.ReversalOfID, apperrors.ErrDuplicate)
			}
		}
		st.journals[journal.JournalID] = *copyJournal(journal, true)
		return nil
	})
}

func (s *Store) TransitionJournalStatus(ctx context.Context, t domain.StatusTransition) error {
	return s.write(ctx, func(st *state) error {
		j, ok := st.journals[t.JournalID]
		if !ok {
			return apperrors.NewNotFoundError("journal " + t.JournalID)
		}
		allowed := false
		for _, from := range t.From {
			if j.Status == from {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("journal %s is %s: %w", j.JournalID, j.Status, apperrors.ErrConflict)
		}
		j.Status = t.To
		if t.ApprovedAt != nil {
			j.ApprovedAt, j.ApprovedBy = t.ApprovedAt, t.ApprovedBy
		}
		if t.PostedAt != nil {
			j.PostedAt, j.PostedBy = t.PostedAt, t.PostedBy
		}
		j.LastUpdatedAt = t.UpdatedAt
		j.LastUpdatedBy = t.UpdatedBy
		st.journals[j.JournalID] = j
		return nil
	})
}

func (s *Store) InsertAuditLog(ctx context.Context, entry domain.AuditLog) error {
	return s.write(ctx, func(st *state) error {
		st.audit = append(st.audit, entry)
		return nil
	})
}

func (s *Store) ListAuditLogs(ctx context.Context, journalID string) ([]domain.AuditLog, error) {
	out := []domain.AuditLog{}
	err := s.read(ctx, func(st *state) error {
		for _, a := range st.audit {
			if a.JournalID == journalID {
				out = append(out, a)
			}
		}
		return nil
	})
	return out, err
}
