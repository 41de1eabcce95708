package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PostingServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.PostingSvcFacade
	ctx     context.Context
}

func TestPostingServiceSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.store = newLedgerStore()
	s.service = services.NewPostingService(s.store, services.WithClock(func() time.Time { return fixedNow }))
	s.ctx = context.Background()
}

func (s *PostingServiceTestSuite) createPosted(date string, books []string, amount string) domain.PostingResult {
	s.T().Helper()
	res := s.service.CreateJournal(s.ctx, journalRequest(date, books, debitLine(1, acctCash, amount), creditLine(2, acctEquity, amount)), creator)
	s.Require().True(res.Success, "create: %+v", res.Errors)
	posted := s.service.PostJournal(s.ctx, res.JournalID, creator, domain.PostOptions{})
	s.Require().True(posted.Success, "post: %+v", posted.Errors)
	return res
}

func (s *PostingServiceTestSuite) requireFailure(res domain.PostingResult, code apperrors.ErrorCode) *domain.PostingError {
	s.T().Helper()
	s.Require().False(res.Success)
	s.Require().NotEmpty(res.Errors)
	s.Require().Equal(code, res.Errors[0].Code, "errors: %+v", res.Errors)
	return &res.Errors[0]
}

func (s *PostingServiceTestSuite) journalCount() int {
	journals, _, err := s.service.ListJournals(s.ctx, domain.JournalFilter{EntityID: entityID, Limit: 100})
	s.Require().NoError(err)
	return len(journals)
}

// --- createJournal ---

func (s *PostingServiceTestSuite) TestCreateJournal_BalancedUSDJournal() {
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		debitLine(1, acctCash, "1000"), creditLine(2, acctEquity, "1000")), creator)

	s.Require().True(res.Success, "errors: %+v", res.Errors)
	s.Equal("JNL-2025-02-0001", res.JournalNumber)
	s.Empty(res.Errors)
	s.Empty(res.Warnings)

	j, err := s.service.GetJournal(s.ctx, res.JournalID)
	s.Require().NoError(err)
	s.Equal(domain.Draft, j.Status)
	s.Equal("2025-02", j.Period)
	s.Equal(domain.Standard, j.JournalType)
	s.Equal(domain.SourceManual, j.Source)
	s.Equal(creator, j.CreatedBy)
	s.Require().Len(j.Lines, 2)
	for _, l := range j.Lines {
		s.Equal(bookLocal, l.BookID)
		s.Equal("USD", l.CurrencyCode, "currency defaults to the entity base currency")
		s.Nil(l.FxRate)
		s.True(l.AmountOriginal.Equal(dec("1000")))
	}

	logs, err := s.service.ListJournalAuditLogs(s.ctx, res.JournalID)
	s.Require().NoError(err)
	s.Require().Len(logs, 1)
	s.Equal(domain.AuditCreate, logs[0].Action)
	s.Equal(creator, logs[0].ActorID)
}

func (s *PostingServiceTestSuite) TestCreateJournal_NumbersIncreasePerPeriod() {
	lines := func() []dto.CreateJournalLineRequest { return []dto.CreateJournalLineRequest{debitLine(1, acctCash, "10"), creditLine(2, acctEquity, "10")} }

	first := s.service.CreateJournal(s.ctx, journalRequest("2025-02-01", []string{bookLocal}, lines()...), creator)
	second := s.service.CreateJournal(s.ctx, journalRequest("2025-02-28", []string{bookLocal}, lines()...), creator)
	march := s.service.CreateJournal(s.ctx, journalRequest("2025-03-01", []string{bookLocal}, lines()...), creator)

	s.Equal("JNL-2025-02-0001", first.JournalNumber)
	s.Equal("JNL-2025-02-0002", second.JournalNumber)
	s.Equal("JNL-2025-03-0001", march.JournalNumber)
}

func (s *PostingServiceTestSuite) TestCreateJournal_Unbalanced() {
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		debitLine(1, acctCash, "1000"), creditLine(2, acctEquity, "500")), creator)

	perr := s.requireFailure(res, apperrors.CodeJournalUnbalance)
	s.Len(res.Errors, 1)
	s.Require().Contains(perr.Differences, "USD")
	s.True(perr.Differences["USD"].Equal(dec("500")))
	s.Contains(perr.Message, "USD 500")
	s.Equal(0, s.journalCount())
}

func (s *PostingServiceTestSuite) TestCreateJournal_UnbalancedPerCurrency() {
	// Debits equal credits in total but not within each currency.
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		inCurrency(debitLine(1, acctCash, "100"), "EUR"), creditLine(2, acctEquity, "100")), creator)

	perr := s.requireFailure(res, apperrors.CodeJournalUnbalance)
	s.True(perr.Differences["EUR"].Equal(dec("100")))
	s.True(perr.Differences["USD"].Equal(dec("-100")))
}

func (s *PostingServiceTestSuite) TestCreateJournal_ShapeValidation() {
	res := s.service.CreateJournal(s.ctx, dto.CreateJournalRequest{EntityID: entityID, JournalDate: "14/02/2025", Lines: []dto.CreateJournalLineRequest{debitLine(1, acctCash, "1")}}, creator)

	s.requireFailure(res, apperrors.CodeValidation)
	fields := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		fields = append(fields, e.Field)
	}
	s.Contains(fields, "bookIDs")
	s.Contains(fields, "journalDate")
	s.Contains(fields, "description")
	s.Contains(fields, "lines")
}

func (s *PostingServiceTestSuite) TestCreateJournal_DuplicateLineNumbers() {
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		debitLine(1, acctCash, "10"), creditLine(1, acctEquity, "10")), creator)

	perr := s.requireFailure(res, apperrors.CodeValidation)
	s.Equal("lines[1].lineNumber", perr.Field)
}

func (s *PostingServiceTestSuite) TestCreateJournal_EntityNotFound() {
	req := journalRequest("2025-02-14", []string{bookLocal}, debitLine(1, acctCash, "10"), creditLine(2, acctEquity, "10"))
	req.EntityID = "ent-missing"

	s.requireFailure(s.service.CreateJournal(s.ctx, req, creator), apperrors.CodeEntityNotFound)
}

func (s *PostingServiceTestSuite) TestCreateJournal_InvalidBooks() {
	for name, books := range map[string][]string{
		"inactive":     {bookLocal, bookInactive},
		"other entity": {bookForeign},
		"unknown":      {"book-nope"},
	} {
		s.Run(name, func() {
			res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", books,
				debitLine(1, acctCash, "10"), creditLine(2, acctEquity, "10")), creator)
			s.requireFailure(res, apperrors.CodeInvalidBooks)
		})
	}
	s.Equal(0, s.journalCount())
}

func (s *PostingServiceTestSuite) TestCreateJournal_InvalidAccounts() {
	for name, account := range map[string]string{
		"inactive":     acctInactive,
		"other entity": acctForeign,
		"unknown":      "acc-nope",
	} {
		s.Run(name, func() {
			res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
				debitLine(1, account, "10"), creditLine(2, acctEquity, "10")), creator)
			s.requireFailure(res, apperrors.CodeInvalidAccounts)
		})
	}
}

func (s *PostingServiceTestSuite) TestCreateJournal_InvalidLines() {
	both := debitLine(3, acctRent, "50")
	both.Credit = dec("50")
	zero := creditLine(4, acctRent, "0")

	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		debitLine(1, acctCash, "100"), creditLine(2, acctEquity, "100"), both, zero), creator)

	s.requireFailure(res, apperrors.CodeInvalidLine)
	s.Require().Len(res.Errors, 2)
	s.Equal(3, res.Errors[0].LineNumber)
	s.Equal("Line cannot have both debit and credit", res.Errors[0].Message)
	s.Equal(4, res.Errors[1].LineNumber)
	s.Equal("Line must have either debit or credit", res.Errors[1].Message)
	s.Equal(0, s.journalCount())
}

func (s *PostingServiceTestSuite) TestCreateJournal_FansOutToEveryBook() {
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal, bookGroup, bookLocal},
		debitLine(1, acctCash, "250"), creditLine(2, acctRevenue, "250")), creator)
	s.Require().True(res.Success, "errors: %+v", res.Errors)

	j, err := s.service.GetJournal(s.ctx, res.JournalID)
	s.Require().NoError(err)
	s.Require().Len(j.Lines, 4, "duplicate book ids are ignored")

	byBook := j.LinesByBook()
	s.Len(byBook[bookLocal], 2)
	s.Len(byBook[bookGroup], 2)
	for _, lines := range byBook {
		s.Equal(1, lines[0].LineNumber)
		s.Equal(2, lines[1].LineNumber)
	}
	s.True(ledger.ValidateJournalBooks(*j).Balanced)
}

func (s *PostingServiceTestSuite) TestCreateJournal_RateNotFound() {
	res := s.service.CreateJournal(s.ctx, journalRequest("2024-12-15", []string{bookLocal},
		inCurrency(debitLine(1, acctCash, "100"), "EUR"), inCurrency(creditLine(2, acctRevenue, "100"), "EUR")), creator)

	perr := s.requireFailure(res, apperrors.CodeRateNotFound)
	s.Contains(perr.Message, "EUR->USD")
	s.Equal(0, s.journalCount())
}

func (s *PostingServiceTestSuite) TestCreateJournal_ConvertsForeignCurrency() {
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		inCurrency(debitLine(1, acctAR, "100"), "EUR"), inCurrency(creditLine(2, acctRevenue, "100"), "EUR")), creator)
	s.Require().True(res.Success, "errors: %+v", res.Errors)
	s.Empty(res.Warnings)

	j, err := s.service.GetJournal(s.ctx, res.JournalID)
	s.Require().NoError(err)
	for _, l := range j.Lines {
		s.Equal("EUR", l.CurrencyCode)
		s.True(l.AmountOriginal.Equal(dec("100")))
		s.Require().NotNil(l.FxRate)
		s.True(l.FxRate.Equal(dec("1.10")))
		s.True(l.Amount().Equal(dec("110")))
	}
}

func (s *PostingServiceTestSuite) TestCreateJournal_AbsorbsRoundingDifference() {
	// 10.01 * 1.2345 = 12.357345 -> 12.36 twice; 20.02 * 1.2345 = 24.71469 -> 24.71.
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		inCurrency(debitLine(1, acctCash, "10.01"), "GBP"),
		inCurrency(debitLine(2, acctAR, "10.01"), "GBP"),
		inCurrency(creditLine(3, acctRevenue, "20.02"), "GBP")), creator)
	s.Require().True(res.Success, "errors: %+v", res.Errors)
	s.Require().Len(res.Warnings, 1)
	s.Equal(domain.WarningFxRounding, res.Warnings[0].Code)
	s.Equal(domain.SeverityLow, res.Warnings[0].Severity)

	j, err := s.service.GetJournal(s.ctx, res.JournalID)
	s.Require().NoError(err)
	s.True(j.Lines[2].Credit.Equal(dec("24.72")))
	s.True(j.Lines[2].AmountOriginal.Equal(dec("20.02")))
	s.True(ledger.ValidateJournalBooks(*j).Balanced)

	posted := s.service.PostJournal(s.ctx, res.JournalID, creator, domain.PostOptions{})
	s.True(posted.Success, "errors: %+v", posted.Errors)
}

func (s *PostingServiceTestSuite) TestCreateJournal_RejectsLinesThatConvertToZero() {
	// 0.004 EUR * 1.10 = 0.0044 USD, which rounds to 0.00.
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		inCurrency(debitLine(1, acctCash, "0.004"), "EUR"),
		inCurrency(creditLine(2, acctEquity, "0.004"), "EUR")), creator)

	s.requireFailure(res, apperrors.CodeInvalidLine)
	s.Require().Len(res.Errors, 2)
	s.Equal(1, res.Errors[0].LineNumber)
	s.Contains(res.Errors[0].Message, "converts to zero USD")
	s.Equal(2, res.Errors[1].LineNumber)
	s.Equal(0, s.journalCount())
}

func (s *PostingServiceTestSuite) TestCreateJournal_RejectsSingleZeroLineAmongConvertedLines() {
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal, bookGroup},
		inCurrency(debitLine(1, acctCash, "100"), "EUR"),
		inCurrency(debitLine(2, acctAR, "0.004"), "EUR"),
		inCurrency(creditLine(3, acctRevenue, "100.004"), "EUR")), creator)

	s.requireFailure(res, apperrors.CodeInvalidLine)
	s.Require().Len(res.Errors, 1)
	s.Equal(2, res.Errors[0].LineNumber)
	s.Equal(0, s.journalCount())
}

func (s *PostingServiceTestSuite) TestCreateJournal_ConcurrentNumbering() {
	const callers = 20
	var wg sync.WaitGroup
	numbers := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := s.service.CreateJournal(context.Background(), journalRequest("2025-02-14", []string{bookLocal, bookGroup},
				debitLine(1, acctCash, "1"), creditLine(2, acctEquity, "1")), creator)
			if res.Success {
				numbers[i] = res.JournalNumber
			}
		}(i)
	}
	wg.Wait()

	sort.Strings(numbers)
	for i, n := range numbers {
		s.Equal(fmt.Sprintf("JNL-2025-02-%04d", i+1), n)
	}
}

func (s *PostingServiceTestSuite) TestCreateJournal_CancelledContextWritesNothing() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	res := s.service.CreateJournal(ctx, journalRequest("2025-02-14", []string{bookLocal},
		debitLine(1, acctCash, "10"), creditLine(2, acctEquity, "10")), creator)

	s.requireFailure(res, apperrors.CodeInternal)
	s.Equal(0, s.journalCount())
}

// --- approval ---

func (s *PostingServiceTestSuite) TestApprovalFlow() {
	invalidator := new(MockReportInvalidator)
	invalidator.On("InvalidateEntity", mock.Anything, entityID).Return(nil).Once()
	s.service = services.NewPostingService(s.store,
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithApprovalPolicy(ledger.ThresholdApproval{Threshold: dec("10000")}),
		services.WithReportInvalidator(invalidator))

	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		debitLine(1, acctCash, "20000"), creditLine(2, acctEquity, "20000")), creator)
	s.Require().True(res.Success)
	s.Require().Len(res.Warnings, 1)
	s.Equal(domain.WarningApprovalRequired, res.Warnings[0].Code)

	s.requireFailure(s.service.PostJournal(s.ctx, res.JournalID, creator, domain.PostOptions{}), apperrors.CodeApprovalRequired)

	selfApproval := s.service.ApproveJournal(s.ctx, res.JournalID, creator)
	perr := s.requireFailure(selfApproval, apperrors.CodeValidation)
	s.Equal("actorID", perr.Field)

	s.Require().True(s.service.ApproveJournal(s.ctx, res.JournalID, approver).Success)
	j, err := s.service.GetJournal(s.ctx, res.JournalID)
	s.Require().NoError(err)
	s.Equal(domain.Approved, j.Status)
	s.Equal(approver, *j.ApprovedBy)

	s.requireFailure(s.service.ApproveJournal(s.ctx, res.JournalID, approver), apperrors.CodeInvalidStatus)

	posted := s.service.PostJournal(s.ctx, res.JournalID, creator, domain.PostOptions{})
	s.Require().True(posted.Success, "errors: %+v", posted.Errors)
	invalidator.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestApprovalCountsLogicalLinesOnce() {
	s.service = services.NewPostingService(s.store,
		services.WithApprovalPolicy(ledger.ThresholdApproval{Threshold: dec("10000")}))

	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal, bookGroup},
		debitLine(1, acctCash, "3000"), creditLine(2, acctEquity, "3000")), creator)
	s.Require().True(res.Success)
	s.Empty(res.Warnings)
	s.True(s.service.PostJournal(s.ctx, res.JournalID, creator, domain.PostOptions{}).Success)
}

// --- postJournal ---

func (s *PostingServiceTestSuite) TestPostJournal_SkipApprovalCheck() {
	s.service = services.NewPostingService(s.store,
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithApprovalPolicy(ledger.ThresholdApproval{Threshold: dec("1")}))
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		debitLine(1, acctCash, "1000"), creditLine(2, acctEquity, "1000")), creator)
	s.Require().True(res.Success)

	posted := s.service.PostJournal(s.ctx, res.JournalID, creator, domain.PostOptions{SkipApprovalCheck: true})
	s.Require().True(posted.Success, "errors: %+v", posted.Errors)
	s.Equal(res.JournalNumber, posted.JournalNumber)

	j, err := s.service.GetJournal(s.ctx, res.JournalID)
	s.Require().NoError(err)
	s.Equal(domain.Posted, j.Status)
	s.Require().NotNil(j.PostedAt)
	s.True(j.PostedAt.Equal(fixedNow))
	s.Equal(creator, *j.PostedBy)

	logs, err := s.service.ListJournalAuditLogs(s.ctx, res.JournalID)
	s.Require().NoError(err)
	var posts []domain.AuditLog
	for _, l := range logs {
		if l.Action == domain.AuditPost {
			posts = append(posts, l)
		}
	}
	s.Require().Len(posts, 1)
	s.Equal(string(domain.Draft), posts[0].OldValues["status"])
	s.Equal(string(domain.Posted), posts[0].NewValues["status"])
}

func (s *PostingServiceTestSuite) TestPostJournal_BypassActorRecordedAsPoster() {
	res := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		debitLine(1, acctCash, "5"), creditLine(2, acctEquity, "5")), creator)
	s.Require().True(res.Success)

	s.Require().True(s.service.PostJournal(s.ctx, res.JournalID, creator, domain.PostOptions{BypassActor: systemActor}).Success)
	j, err := s.service.GetJournal(s.ctx, res.JournalID)
	s.Require().NoError(err)
	s.Equal(systemActor, *j.PostedBy)
	s.Equal(creator, j.LastUpdatedBy)
}

func (s *PostingServiceTestSuite) TestPostJournal_NotFoundAndInvalidStatus() {
	s.requireFailure(s.service.PostJournal(s.ctx, "missing", creator, domain.PostOptions{}), apperrors.CodeJournalNotFound)

	res := s.createPosted("2025-02-14", []string{bookLocal}, "10")
	s.requireFailure(s.service.PostJournal(s.ctx, res.JournalID, creator, domain.PostOptions{}), apperrors.CodeInvalidStatus)
}

func (s *PostingServiceTestSuite) TestPostJournal_PostedJournalIsImmutable() {
	res := s.createPosted("2025-02-14", []string{bookLocal}, "10")
	before, err := s.service.GetJournal(s.ctx, res.JournalID)
	s.Require().NoError(err)

	s.requireFailure(s.service.ApproveJournal(s.ctx, res.JournalID, approver), apperrors.CodeInvalidStatus)
	s.requireFailure(s.service.PostJournal(s.ctx, res.JournalID, approver, domain.PostOptions{SkipBalanceCheck: true, SkipApprovalCheck: true, SkipPeriodLockCheck: true}), apperrors.CodeInvalidStatus)

	after, err := s.service.GetJournal(s.ctx, res.JournalID)
	s.Require().NoError(err)
	s.Equal(before, after)
}

func (s *PostingServiceTestSuite) TestPostJournal_RejectsStoredZeroLine() {
	journalDate := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	journal := domain.Journal{
		JournalID:     "jnl-zero-line",
		EntityID:      entityID,
		JournalNumber: "JNL-2025-02-0042",
		Sequence:      42,
		JournalDate:   journalDate,
		Period:        "2025-02",
		JournalType:   domain.Standard,
		Status:        domain.Draft,
		Lines: []domain.JournalLine{
			{LineID: "l1", JournalID: "jnl-zero-line", BookID: bookLocal, LineNumber: 1, AccountID: acctCash, Debit: dec("5"), Credit: decimal.Zero, CurrencyCode: "USD"},
			{LineID: "l2", JournalID: "jnl-zero-line", BookID: bookLocal, LineNumber: 2, AccountID: acctAR, Debit: decimal.Zero, Credit: decimal.Zero, CurrencyCode: "USD"},
			{LineID: "l3", JournalID: "jnl-zero-line", BookID: bookLocal, LineNumber: 3, AccountID: acctEquity, Debit: decimal.Zero, Credit: dec("5"), CurrencyCode: "USD"},
		},
		AuditFields: domain.AuditFields{CreatedAt: fixedNow, CreatedBy: creator, LastUpdatedAt: fixedNow, LastUpdatedBy: creator},
	}
	s.Require().NoError(s.store.InsertJournal(s.ctx, journal))

	res := s.service.PostJournal(s.ctx, journal.JournalID, creator, domain.PostOptions{SkipBalanceCheck: true, SkipApprovalCheck: true})
	perr := s.requireFailure(res, apperrors.CodeInvalidLine)
	s.Equal(2, perr.LineNumber)

	stored, err := s.service.GetJournal(s.ctx, journal.JournalID)
	s.Require().NoError(err)
	s.Equal(domain.Draft, stored.Status)
}

func (s *PostingServiceTestSuite) TestPostJournal_PeriodLocked() {
	locks, err := ledger.NewStaticPeriodLocks([]string{entityID + ":" + bookGroup + ":2025-02"})
	s.Require().NoError(err)
	s.service = services.NewPostingService(s.store, services.WithPeriodLockPolicy(locks))

	localOnly := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		debitLine(1, acctCash, "10"), creditLine(2, acctEquity, "10")), creator)
	both := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal, bookGroup},
		debitLine(1, acctCash, "10"), creditLine(2, acctEquity, "10")), creator)
	s.Require().True(localOnly.Success)
	s.Require().True(both.Success)

	s.True(s.service.PostJournal(s.ctx, localOnly.JournalID, creator, domain.PostOptions{}).Success)

	perr := s.requireFailure(s.service.PostJournal(s.ctx, both.JournalID, creator, domain.PostOptions{}), apperrors.CodePeriodLocked)
	s.Contains(perr.Message, bookGroup)
	j, err := s.service.GetJournal(s.ctx, both.JournalID)
	s.Require().NoError(err)
	s.Equal(domain.Draft, j.Status)

	s.True(s.service.PostJournal(s.ctx, both.JournalID, systemActor, domain.PostOptions{SkipPeriodLockCheck: true}).Success)
}

// --- reverseJournal ---

func (s *PostingServiceTestSuite) TestReverseJournal_MirrorsLinesOnce() {
	invalidator := new(MockReportInvalidator)
	invalidator.On("InvalidateEntity", mock.Anything, entityID).Return(nil).Times(2)
	s.service = services.NewPostingService(s.store,
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithReportInvalidator(invalidator))

	created := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal, bookGroup},
		inCurrency(debitLine(1, acctAR, "100"), "EUR"), inCurrency(creditLine(2, acctRevenue, "100"), "EUR")), creator)
	s.Require().True(created.Success)
	s.Require().True(s.service.PostJournal(s.ctx, created.JournalID, creator, domain.PostOptions{}).Success)

	rev := s.service.ReverseJournal(s.ctx, created.JournalID, reversalActor, "correction")
	s.Require().True(rev.Success, "errors: %+v", rev.Errors)
	s.Equal("JNL-2025-03-0001", rev.JournalNumber)

	original, err := s.service.GetJournal(s.ctx, created.JournalID)
	s.Require().NoError(err)
	s.Equal(domain.Reversed, original.Status)

	reversal, err := s.service.GetJournal(s.ctx, rev.JournalID)
	s.Require().NoError(err)
	s.Equal(domain.Posted, reversal.Status)
	s.Equal(domain.Reversing, reversal.JournalType)
	s.Equal(domain.SourceReversal, reversal.Source)
	s.Require().NotNil(reversal.ReversalOfID)
	s.Equal(created.JournalID, *reversal.ReversalOfID)
	s.Equal("2025-03", reversal.Period)
	s.Contains(reversal.Description, original.JournalNumber)
	s.Contains(reversal.Description, "correction")
	s.Require().NotNil(reversal.PostedAt)

	type key struct {
		book    string
		line    int
		account string
	}
	mirrored := make(map[key]domain.JournalLine)
	for _, l := range reversal.Lines {
		mirrored[key{l.BookID, l.LineNumber, l.AccountID}] = l
	}
	s.Require().Len(reversal.Lines, len(original.Lines))
	for _, l := range original.Lines {
		m, ok := mirrored[key{l.BookID, l.LineNumber, l.AccountID}]
		s.Require().True(ok)
		s.True(m.Debit.Equal(l.Credit))
		s.True(m.Credit.Equal(l.Debit))
		s.Equal(l.CurrencyCode, m.CurrencyCode)
		s.True(m.AmountOriginal.Equal(l.AmountOriginal))
		s.Equal(l.FxRate, m.FxRate)
	}

	logs, err := s.service.ListJournalAuditLogs(s.ctx, created.JournalID)
	s.Require().NoError(err)
	last := logs[len(logs)-1]
	s.Equal(domain.AuditReverse, last.Action)
	s.Equal(reversalActor, last.ActorID)
	s.Equal(rev.JournalID, last.NewValues["reversalID"])
	s.Equal("correction", last.NewValues["reason"])

	second := s.service.ReverseJournal(s.ctx, created.JournalID, reversalActor, "again")
	s.requireFailure(second, apperrors.CodeAlreadyReversed)
	invalidator.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestReverseJournal_Guards() {
	s.requireFailure(s.service.ReverseJournal(s.ctx, "missing", reversalActor, "x"), apperrors.CodeJournalNotFound)

	draft := s.service.CreateJournal(s.ctx, journalRequest("2025-02-14", []string{bookLocal},
		debitLine(1, acctCash, "10"), creditLine(2, acctEquity, "10")), creator)
	s.Require().True(draft.Success)
	s.requireFailure(s.service.ReverseJournal(s.ctx, draft.JournalID, reversalActor, "x"), apperrors.CodeInvalidStatus)

	posted := s.createPosted("2025-02-14", []string{bookLocal}, "10")
	rev := s.service.ReverseJournal(s.ctx, posted.JournalID, reversalActor, "typo")
	s.Require().True(rev.Success)

	s.requireFailure(s.service.ReverseJournal(s.ctx, rev.JournalID, reversalActor, "undo"), apperrors.CodeInvalidStatus)
}

// --- failures of collaborators ---

// failingStore wraps the memory store and lets a test break selected calls.
type failingStore struct {
	*memory.Store
	mock.Mock
}

func (f *failingStore) FindEntityByID(ctx context.Context, id string) (*domain.Entity, error) {
	args := f.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (f *failingStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := f.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return f.Store.RunInTx(ctx, fn)
}

func (s *PostingServiceTestSuite) TestStoreFailuresSurfaceAsInternalError() {
	store := &failingStore{Store: s.store}
	store.On("FindEntityByID", mock.Anything, entityID).Return(nil, errors.New("dial tcp: connection refused")).Once()
	store.On("RunInTx", mock.Anything).Return(errors.New("serialization failure")).Once()
	service := services.NewPostingService(store)
	req := journalRequest("2025-02-14", []string{bookLocal}, debitLine(1, acctCash, "10"), creditLine(2, acctEquity, "10"))

	perr := s.requireFailure(service.CreateJournal(s.ctx, req, creator), apperrors.CodeInternal)
	s.NotContains(perr.Message, "connection refused")

	perr = s.requireFailure(service.PostJournal(s.ctx, "any", creator, domain.PostOptions{}), apperrors.CodeInternal)
	s.NotContains(perr.Message, "serialization")
	store.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestListJournalsValidation() {
	_, _, err := s.service.ListJournals(s.ctx, domain.JournalFilter{})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = s.service.ListJournals(s.ctx, domain.JournalFilter{EntityID: entityID, Period: "2025-13"})
	s.ErrorIs(err, apperrors.ErrValidation)
}
