package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.store = NewStore()
	s.ctx = context.Background()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func journal(id string, seq int, date time.Time, status domain.JournalStatus, lines ...domain.JournalLine) domain.Journal {
	period := domain.PeriodOf(date)
	for i := range lines {
		lines[i].JournalID = id
		if lines[i].BookID == "" {
			lines[i].BookID = "book-1"
		}
	}
	return domain.Journal{
		JournalID:     id,
		EntityID:      "ent-1",
		JournalNumber: fmt.Sprintf("JNL-%s-%04d", period, seq),
		Sequence:      seq,
		JournalDate:   date,
		Period:        period,
		Description:   "journal " + id,
		Status:        status,
		Lines:         lines,
		AuditFields:   domain.AuditFields{CreatedAt: date.Add(time.Hour)},
	}
}

func debit(lineNumber int, account, v string) domain.JournalLine {
	return domain.JournalLine{LineNumber: lineNumber, AccountID: account, Debit: amount(v), Credit: decimal.Zero}
}

func credit(lineNumber int, account, v string) domain.JournalLine {
	return domain.JournalLine{LineNumber: lineNumber, AccountID: account, Debit: decimal.Zero, Credit: amount(v)}
}

func (s *StoreTestSuite) insert(js ...domain.Journal) {
	for _, j := range js {
		s.Require().NoError(s.store.InsertJournal(s.ctx, j))
	}
}

func (s *StoreTestSuite) TestRunInTx_CommitsOnSuccess() {
	err := s.store.RunInTx(s.ctx, func(txCtx context.Context) error {
		if err := s.store.InsertJournal(txCtx, journal("j1", 1, day(2025, 2, 1), domain.Draft)); err != nil {
			return err
		}
		// Visible inside the transaction.
		_, err := s.store.FindJournalByID(txCtx, "j1")
		s.Require().NoError(err)
		// Not visible outside before commit.
		_, err = s.store.FindJournalByID(s.ctx, "j1")
		s.True(errors.Is(err, apperrors.ErrNotFound))
		return nil
	})
	s.Require().NoError(err)

	_, err = s.store.FindJournalByID(s.ctx, "j1")
	s.NoError(err)
}

func (s *StoreTestSuite) TestRunInTx_RollsBackOnError() {
	boom := errors.New("boom")
	err := s.store.RunInTx(s.ctx, func(txCtx context.Context) error {
		s.Require().NoError(s.store.InsertJournal(txCtx, journal("j1", 1, day(2025, 2, 1), domain.Draft)))
		s.Require().NoError(s.store.InsertAuditLog(txCtx, domain.AuditLog{AuditID: "a1", JournalID: "j1"}))
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.store.FindJournalByID(s.ctx, "j1")
	s.ErrorIs(err, apperrors.ErrNotFound)
	logs, err := s.store.ListAuditLogs(s.ctx, "j1")
	s.NoError(err)
	s.Empty(logs)
}

func (s *StoreTestSuite) TestRunInTx_RollsBackWhenCancelledBeforeCommit() {
	ctx, cancel := context.WithCancel(s.ctx)
	err := s.store.RunInTx(ctx, func(txCtx context.Context) error {
		s.Require().NoError(s.store.InsertJournal(txCtx, journal("j1", 1, day(2025, 2, 1), domain.Draft)))
		cancel()
		return nil
	})
	s.ErrorIs(err, context.Canceled)

	_, err = s.store.FindJournalByID(s.ctx, "j1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestRunInTx_WaitForSlotHonoursContext() {
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.store.RunInTx(s.ctx, func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()
	began := time.Now()
	err := s.store.RunInTx(ctx, func(context.Context) error {
		s.Fail("second transaction must not run while the first holds the slot")
		return nil
	})
	s.ErrorIs(err, context.DeadlineExceeded)
	s.Less(time.Since(began), 2*time.Second)

	close(release)
	s.Require().NoError(<-done)
	s.NoError(s.store.InsertJournal(s.ctx, journal("j1", 1, day(2025, 2, 1), domain.Draft)))
}

func (s *StoreTestSuite) TestInsertJournal_Duplicates() {
	first := journal("j1", 1, day(2025, 2, 1), domain.Draft)
	s.insert(first)

	sameNumber := journal("j2", 1, day(2025, 2, 3), domain.Draft)
	s.ErrorIs(s.store.InsertJournal(s.ctx, sameNumber), apperrors.ErrDuplicate)

	original := "j1"
	rev1 := journal("r1", 2, day(2025, 2, 4), domain.Posted)
	rev1.ReversalOfID = &original
	s.insert(rev1)

	rev2 := journal("r2", 3, day(2025, 2, 4), domain.Posted)
	rev2.ReversalOfID = &original
	s.ErrorIs(s.store.InsertJournal(s.ctx, rev2), apperrors.ErrDuplicate)

	found, err := s.store.FindReversalOf(s.ctx, "j1")
	s.Require().NoError(err)
	s.Equal("r1", found.JournalID)
}

func (s *StoreTestSuite) TestMaxJournalSequence() {
	s.insert(
		journal("j1", 1, day(2025, 2, 1), domain.Draft),
		journal("j2", 7, day(2025, 2, 9), domain.Posted),
		journal("j3", 9, day(2025, 3, 1), domain.Draft),
	)
	seq, err := s.store.MaxJournalSequence(s.ctx, "ent-1", "2025-02")
	s.NoError(err)
	s.Equal(7, seq)

	seq, err = s.store.MaxJournalSequence(s.ctx, "ent-1", "2025-04")
	s.NoError(err)
	s.Equal(0, seq)
}

func (s *StoreTestSuite) TestTransitionJournalStatus() {
	s.insert(journal("j1", 1, day(2025, 2, 1), domain.Draft))
	now := day(2025, 2, 2)
	actor := "user-2"

	err := s.store.TransitionJournalStatus(s.ctx, domain.StatusTransition{
		JournalID: "j1", From: []domain.JournalStatus{domain.Draft, domain.Approved}, To: domain.Posted,
		PostedAt: &now, PostedBy: &actor, UpdatedAt: now, UpdatedBy: actor,
	})
	s.Require().NoError(err)

	j, err := s.store.FindJournalByID(s.ctx, "j1")
	s.Require().NoError(err)
	s.Equal(domain.Posted, j.Status)
	s.Equal(actor, *j.PostedBy)
	s.Equal(actor, j.LastUpdatedBy)

	err = s.store.TransitionJournalStatus(s.ctx, domain.StatusTransition{
		JournalID: "j1", From: []domain.JournalStatus{domain.Draft}, To: domain.Approved,
	})
	s.ErrorIs(err, apperrors.ErrConflict)

	err = s.store.TransitionJournalStatus(s.ctx, domain.StatusTransition{
		JournalID: "missing", From: []domain.JournalStatus{domain.Draft}, To: domain.Posted,
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestFindJournalByID_ReturnsCopy() {
	s.insert(journal("j1", 1, day(2025, 2, 1), domain.Draft, debit(1, "cash", "10"), credit(2, "equity", "10")))

	j, err := s.store.FindJournalByID(s.ctx, "j1")
	s.Require().NoError(err)
	j.Lines[0].Debit = amount("999")

	again, err := s.store.FindJournalByID(s.ctx, "j1")
	s.Require().NoError(err)
	s.True(again.Lines[0].Debit.Equal(amount("10")))
}

func (s *StoreTestSuite) TestListJournals_PaginatesNewestFirst() {
	s.insert(
		journal("j1", 1, day(2025, 2, 1), domain.Draft),
		journal("j2", 2, day(2025, 2, 2), domain.Posted),
		journal("j3", 3, day(2025, 2, 3), domain.Draft),
		journal("j4", 1, day(2025, 3, 1), domain.Draft),
	)

	page, next, err := s.store.ListJournals(s.ctx, domain.JournalFilter{EntityID: "ent-1", Period: "2025-02", Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("j3", page[0].JournalID)
	s.Equal("j2", page[1].JournalID)
	s.Nil(page[0].Lines)
	s.Require().NotNil(next)

	page, next, err = s.store.ListJournals(s.ctx, domain.JournalFilter{EntityID: "ent-1", Period: "2025-02", Limit: 2, NextToken: next})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("j1", page[0].JournalID)
	s.Nil(next)

	page, _, err = s.store.ListJournals(s.ctx, domain.JournalFilter{EntityID: "ent-1", Status: domain.Posted, Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("j2", page[0].JournalID)

	bad := "%%%"
	_, _, err = s.store.ListJournals(s.ctx, domain.JournalFilter{EntityID: "ent-1", NextToken: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *StoreTestSuite) TestFindLatestFxRate() {
	s.Require().NoError(s.store.SaveFxRate(s.ctx, domain.FxRate{RateID: "r1", FromCurrency: "EUR", ToCurrency: "USD", Rate: amount("1.05"), EffectiveDate: day(2025, 1, 1)}))
	s.Require().NoError(s.store.SaveFxRate(s.ctx, domain.FxRate{RateID: "r2", FromCurrency: "EUR", ToCurrency: "USD", Rate: amount("1.10"), EffectiveDate: day(2025, 2, 1)}))
	s.Require().NoError(s.store.SaveFxRate(s.ctx, domain.FxRate{RateID: "r3", FromCurrency: "EUR", ToCurrency: "USD", Rate: amount("1.20"), EffectiveDate: day(2025, 3, 1)}))

	rate, err := s.store.FindLatestFxRate(s.ctx, "EUR", "USD", day(2025, 2, 15))
	s.Require().NoError(err)
	s.Equal("r2", rate.RateID)

	rate, err = s.store.FindLatestFxRate(s.ctx, "EUR", "USD", day(2025, 3, 1))
	s.Require().NoError(err)
	s.Equal("r3", rate.RateID)

	_, err = s.store.FindLatestFxRate(s.ctx, "EUR", "USD", day(2024, 12, 31))
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.store.FindLatestFxRate(s.ctx, "USD", "EUR", day(2025, 2, 15))
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestReferenceLookupsAreScopedToEntity() {
	s.Require().NoError(s.store.SaveBook(s.ctx, domain.LedgerBook{BookID: "b1", EntityID: "ent-1", IsActive: true}))
	s.Require().NoError(s.store.SaveBook(s.ctx, domain.LedgerBook{BookID: "b2", EntityID: "ent-2", IsActive: true}))
	s.Require().NoError(s.store.SaveAccount(s.ctx, domain.Account{AccountID: "a1", EntityID: "ent-1", Code: "2000"}))
	s.Require().NoError(s.store.SaveAccount(s.ctx, domain.Account{AccountID: "a2", EntityID: "ent-1", Code: "1000"}))
	s.Require().NoError(s.store.SaveAccount(s.ctx, domain.Account{AccountID: "a3", EntityID: "ent-2", Code: "1000"}))

	books, err := s.store.FindBooksByIDs(s.ctx, "ent-1", []string{"b1", "b2", "nope"})
	s.NoError(err)
	s.Len(books, 1)

	accounts, err := s.store.FindAccountsByIDs(s.ctx, "ent-1", []string{"a1", "a3"})
	s.NoError(err)
	s.Len(accounts, 1)

	all, err := s.store.ListAccountsByEntity(s.ctx, "ent-1")
	s.NoError(err)
	s.Require().Len(all, 2)
	s.Equal("1000", all[0].Code)

	_, err = s.store.FindEntityByID(s.ctx, "ent-1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSumPostedLinesByAccount() {
	s.insert(
		journal("j1", 1, day(2025, 1, 10), domain.Posted, debit(1, "cash", "100"), credit(2, "equity", "100")),
		journal("j2", 1, day(2025, 2, 10), domain.Reversed, debit(1, "cash", "40"), credit(2, "revenue", "40")),
		journal("j3", 2, day(2025, 2, 11), domain.Posted, debit(1, "revenue", "40"), credit(2, "cash", "40")),
		journal("j4", 3, day(2025, 2, 12), domain.Draft, debit(1, "cash", "999"), credit(2, "equity", "999")),
		journal("j5", 1, day(2025, 3, 1), domain.Posted, debit(1, "cash", "5"), credit(2, "equity", "5")),
	)

	totals, err := s.store.SumPostedLinesByAccount(s.ctx, domain.LineSumQuery{EntityID: "ent-1", Period: "2025-02"})
	s.Require().NoError(err)
	byAccount := make(map[string]domain.AccountTotals)
	for _, t := range totals {
		byAccount[t.AccountID] = t
	}
	s.True(byAccount["cash"].Debit.Equal(amount("140")))
	s.True(byAccount["cash"].Credit.Equal(amount("40")))
	s.True(byAccount["revenue"].Debit.Equal(byAccount["revenue"].Credit))
	s.True(byAccount["equity"].Credit.Equal(amount("100")))

	asOf := day(2025, 1, 31)
	totals, err = s.store.SumPostedLinesByAccount(s.ctx, domain.LineSumQuery{EntityID: "ent-1", AccountID: "cash", AsOf: &asOf})
	s.Require().NoError(err)
	s.Require().Len(totals, 1)
	s.True(totals[0].Debit.Equal(amount("100")))
}

func (s *StoreTestSuite) TestAccountLedgerPaging() {
	s.insert(
		journal("j1", 1, day(2025, 1, 5), domain.Posted, debit(1, "cash", "100"), credit(2, "equity", "100")),
		journal("j2", 2, day(2025, 1, 20), domain.Posted, credit(1, "cash", "30"), debit(2, "rent", "30")),
		journal("j3", 1, day(2025, 2, 3), domain.Posted, debit(1, "cash", "50"), credit(2, "revenue", "50")),
		journal("j4", 2, day(2025, 2, 4), domain.Posted, credit(1, "cash", "10"), debit(2, "rent", "10")),
		journal("j5", 3, day(2025, 2, 5), domain.Draft, debit(1, "cash", "1000"), credit(2, "revenue", "1000")),
	)
	from := day(2025, 2, 1)

	q := domain.AccountLedgerQuery{AccountID: "cash", From: &from, Limit: 1}
	opening, err := s.store.SumAccountLedgerBefore(s.ctx, q)
	s.Require().NoError(err)
	s.True(opening.Equal(amount("70")))

	lines, err := s.store.ListAccountLedgerLines(s.ctx, q)
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal("j3", lines[0].JournalID)
	s.Equal("journal j3", lines[0].JournalDescription)

	q.Offset = 1
	opening, err = s.store.SumAccountLedgerBefore(s.ctx, q)
	s.Require().NoError(err)
	s.True(opening.Equal(amount("120")))

	lines, err = s.store.ListAccountLedgerLines(s.ctx, q)
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal("j4", lines[0].JournalID)

	q.Offset = 5
	lines, err = s.store.ListAccountLedgerLines(s.ctx, q)
	s.Require().NoError(err)
	s.Empty(lines)
}
