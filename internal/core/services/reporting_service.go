package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	defaultLedgerLimit = 100
	maxLedgerLimit     = 1000
)

// ReportingStore is the subset of the ledger store the reporting engine reads.
type ReportingStore interface {
	portsrepo.ReportingRepository
	portsrepo.EntityReader
	portsrepo.AccountReader
}

// ReportingServiceOption configures the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the time stamped on generated reports.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) { s.now = now }
}

type reportingService struct {
	BaseService
	store ReportingStore
	now   func() time.Time
}

// NewReportingService creates the reporting engine.
func NewReportingService(store ReportingStore, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	s := &reportingService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func validateReportQuery(q domain.TrialBalanceQuery) error {
	if q.EntityID == "" {
		return apperrors.NewValidationError("entityID is required")
	}
	if q.Period != "" && !domain.ValidPeriod(q.Period) {
		return apperrors.NewValidationError(fmt.Sprintf("period %q must be YYYY-MM", q.Period))
	}
	return nil
}

// TrialBalance aggregates posted lines per account. Totals are derived from the same row sums.
func (s *reportingService) TrialBalance(ctx context.Context, q domain.TrialBalanceQuery) (*domain.TrialBalance, error) {
	if err := validateReportQuery(q); err != nil {
		return nil, err
	}
	if _, err := s.store.FindEntityByID(ctx, q.EntityID); err != nil {
		return nil, err
	}

	sumQuery := domain.LineSumQuery{EntityID: q.EntityID, BookID: q.BookID, Period: q.Period}
	if q.Period == "" {
		sumQuery.AsOf = q.AsOf
	}
	totals, err := s.store.SumPostedLinesByAccount(ctx, sumQuery)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate posted lines", slog.String("entity_id", q.EntityID))
		return nil, fmt.Errorf("failed to aggregate posted lines: %w", err)
	}
	accounts, err := s.store.ListAccountsByEntity(ctx, q.EntityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("entity_id", q.EntityID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}

	rows := make([]domain.TrialBalanceRow, 0, len(totals))
	for _, t := range totals {
		acc, ok := byID[t.AccountID]
		if !ok {
			acc = domain.Account{AccountID: t.AccountID, Code: t.AccountID, Name: t.AccountID}
		}
		rows = append(rows, newTrialBalanceRow(acc, t.Debit, t.Credit))
	}

	tb := &domain.TrialBalance{
		EntityID:     q.EntityID,
		BookID:       q.BookID,
		Period:       q.Period,
		AsOf:         sumQuery.AsOf,
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		GeneratedAt:  s.now(),
	}
	for _, r := range rows {
		tb.TotalDebits = tb.TotalDebits.Add(r.Debit)
		tb.TotalCredits = tb.TotalCredits.Add(r.Credit)
	}
	tb.Difference = tb.TotalDebits.Sub(tb.TotalCredits)
	tb.IsBalanced = tb.Difference.Abs().LessThan(domain.BalanceEpsilon)

	if q.IncludeSubAccounts {
		rows = rollUp(rows, byID)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	tb.Rows = rows
	return tb, nil
}

func newTrialBalanceRow(acc domain.Account, debit, credit decimal.Decimal) domain.TrialBalanceRow {
	return domain.TrialBalanceRow{
		AccountID:       acc.AccountID,
		AccountCode:     acc.Code,
		AccountName:     acc.Name,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		Debit:           debit,
		Credit:          credit,
		Balance:         debit.Sub(credit),
	}
}

// rollUp adds every row's sums into all of its ancestors, creating ancestor rows as needed.
func rollUp(rows []domain.TrialBalanceRow, accounts map[string]domain.Account) []domain.TrialBalanceRow {
	index := make(map[string]int, len(rows))
	for i, r := range rows {
		index[r.AccountID] = i
	}
	leaves := len(rows)
	for i := 0; i < leaves; i++ {
		own := rows[i]
		visited := map[string]struct{}{own.AccountID: {}}
		parent := own.ParentAccountID
		for parent != nil {
			if _, loop := visited[*parent]; loop {
				break
			}
			visited[*parent] = struct{}{}
			acc, ok := accounts[*parent]
			if !ok {
				break
			}
			pi, exists := index[acc.AccountID]
			if !exists {
				rows = append(rows, newTrialBalanceRow(acc, decimal.Zero, decimal.Zero))
				pi = len(rows) - 1
				index[acc.AccountID] = pi
			}
			rows[pi].Debit = rows[pi].Debit.Add(own.Debit)
			rows[pi].Credit = rows[pi].Credit.Add(own.Credit)
			rows[pi].Balance = rows[pi].Debit.Sub(rows[pi].Credit)
			rows[pi].Rollup = true
			parent = acc.ParentAccountID
		}
	}
	for i := range rows {
		rows[i].Depth = depthOf(rows[i].AccountID, accounts)
	}
	return rows
}

func depthOf(accountID string, accounts map[string]domain.Account) int {
	depth := 0
	seen := map[string]struct{}{accountID: {}}
	acc, ok := accounts[accountID]
	for ok && acc.ParentAccountID != nil {
		if _, loop := seen[*acc.ParentAccountID]; loop {
			break
		}
		seen[*acc.ParentAccountID] = struct{}{}
		depth++
		acc, ok = accounts[*acc.ParentAccountID]
	}
	return depth
}

func statementLine(r domain.TrialBalanceRow) domain.StatementLine {
	return domain.StatementLine{
		AccountID:   r.AccountID,
		AccountCode: r.AccountCode,
		AccountName: r.AccountName,
		Amount:      accounting.NormalBalance(r.AccountType, r.Balance),
	}
}

// IncomeStatement partitions trial balance rows into revenue, COGS and expenses.
func (s *reportingService) IncomeStatement(ctx context.Context, q domain.TrialBalanceQuery) (*domain.IncomeStatement, error) {
	q.IncludeSubAccounts = false
	tb, err := s.TrialBalance(ctx, q)
	if err != nil {
		return nil, err
	}
	is := &domain.IncomeStatement{
		EntityID: tb.EntityID, BookID: tb.BookID, Period: tb.Period, AsOf: tb.AsOf,
		Revenue: []domain.StatementLine{}, COGS: []domain.StatementLine{}, Expenses: []domain.StatementLine{},
		TotalRevenue: decimal.Zero, TotalCOGS: decimal.Zero, TotalExpenses: decimal.Zero,
	}
	for _, r := range tb.Rows {
		line := statementLine(r)
		switch r.AccountType {
		case domain.Revenue:
			is.Revenue = append(is.Revenue, line)
			is.TotalRevenue = is.TotalRevenue.Add(line.Amount)
		case domain.COGS:
			is.COGS = append(is.COGS, line)
			is.TotalCOGS = is.TotalCOGS.Add(line.Amount)
		case domain.Expense:
			is.Expenses = append(is.Expenses, line)
			is.TotalExpenses = is.TotalExpenses.Add(line.Amount)
		}
	}
	is.GrossProfit = is.TotalRevenue.Sub(is.TotalCOGS)
	is.NetIncome = is.GrossProfit.Sub(is.TotalExpenses)
	return is, nil
}

// BalanceSheet partitions trial balance rows into assets, liabilities and equity.
func (s *reportingService) BalanceSheet(ctx context.Context, q domain.TrialBalanceQuery) (*domain.BalanceSheet, error) {
	q.IncludeSubAccounts = false
	tb, err := s.TrialBalance(ctx, q)
	if err != nil {
		return nil, err
	}
	bs := &domain.BalanceSheet{
		EntityID: tb.EntityID, BookID: tb.BookID, Period: tb.Period, AsOf: tb.AsOf,
		Assets: []domain.StatementLine{}, Liabilities: []domain.StatementLine{}, Equity: []domain.StatementLine{},
		TotalAssets: decimal.Zero, TotalLiabilities: decimal.Zero, TotalEquity: decimal.Zero,
		UnclosedEarnings: decimal.Zero,
	}
	for _, r := range tb.Rows {
		line := statementLine(r)
		switch r.AccountType {
		case domain.Asset:
			bs.Assets = append(bs.Assets, line)
			bs.TotalAssets = bs.TotalAssets.Add(line.Amount)
		case domain.Liability:
			bs.Liabilities = append(bs.Liabilities, line)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(line.Amount)
		case domain.Equity:
			bs.Equity = append(bs.Equity, line)
			bs.TotalEquity = bs.TotalEquity.Add(line.Amount)
		case domain.Revenue, domain.COGS, domain.Expense:
			bs.UnclosedEarnings = bs.UnclosedEarnings.Sub(r.Balance)
		}
	}
	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilities.Add(bs.TotalEquity)
	gap := bs.TotalAssets.Sub(bs.TotalLiabilitiesAndEquity).Sub(bs.UnclosedEarnings)
	bs.IsBalanced = gap.Abs().LessThan(domain.BalanceEpsilon)
	return bs, nil
}

// AccountLedger lists posted lines of one account with a running balance that starts from
// everything ordered before the requested page.
func (s *reportingService) AccountLedger(ctx context.Context, q domain.AccountLedgerQuery) (*domain.AccountLedger, error) {
	if q.AccountID == "" {
		return nil, apperrors.NewValidationError("accountID is required")
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, apperrors.NewValidationError("from must not be after to")
	}
	if q.Limit <= 0 {
		q.Limit = defaultLedgerLimit
	}
	if q.Limit > maxLedgerLimit {
		q.Limit = maxLedgerLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	account, err := s.store.FindAccountByID(ctx, q.AccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account", slog.String("account_id", q.AccountID))
		}
		return nil, err
	}
	opening, err := s.store.SumAccountLedgerBefore(ctx, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute opening balance", slog.String("account_id", q.AccountID))
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}
	entries, err := s.store.ListAccountLedgerLines(ctx, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger lines", slog.String("account_id", q.AccountID))
		return nil, fmt.Errorf("failed to list ledger lines: %w", err)
	}

	running := opening
	for i := range entries {
		running = running.Add(entries[i].Debit).Sub(entries[i].Credit)
		entries[i].RunningBalance = running
		if entries[i].Description == "" {
			entries[i].Description = entries[i].JournalDescription
		}
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return &domain.AccountLedger{
		Account:        *account,
		BookID:         q.BookID,
		OpeningBalance: opening,
		ClosingBalance: running,
		Entries:        entries,
		Limit:          q.Limit,
		Offset:         q.Offset,
	}, nil
}

// AccountBalance sums the posted lines of one account up to asOf.
func (s *reportingService) AccountBalance(ctx context.Context, accountID, bookID string, asOf *time.Time) (*domain.AccountBalance, error) {
	if accountID == "" {
		return nil, apperrors.NewValidationError("accountID is required")
	}
	account, err := s.store.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	totals, err := s.store.SumPostedLinesByAccount(ctx, domain.LineSumQuery{
		EntityID: account.EntityID, BookID: bookID, AccountID: accountID, AsOf: asOf,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to sum account lines: %w", err)
	}
	res := &domain.AccountBalance{AccountID: accountID, BookID: bookID, AsOf: asOf, Debit: decimal.Zero, Credit: decimal.Zero}
	for _, t := range totals {
		res.Debit = res.Debit.Add(t.Debit)
		res.Credit = res.Credit.Add(t.Credit)
	}
	res.Balance = res.Debit.Sub(res.Credit)
	return res, nil
}
