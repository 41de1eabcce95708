package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const (
	entityID     = "ent-us01"
	otherEntity  = "ent-uk01"
	bookLocal    = "book-local"
	bookGroup    = "book-group"
	bookInactive = "book-closed"
	bookForeign  = "book-uk"

	acctCash      = "acc-1110"
	acctAR        = "acc-1200"
	acctAP        = "acc-2100"
	acctEquity    = "acc-3100"
	acctRevenue   = "acc-4000"
	acctCOGS      = "acc-5000"
	acctRent      = "acc-6000"
	acctCurrent   = "acc-1000"
	acctInactive  = "acc-9999"
	acctForeign   = "acc-uk-1110"
	creator       = "user-alice"
	approver      = "user-bob"
	systemActor   = "system-close"
	reversalActor = "user-carol"
)

var fixedNow = time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func strPtr(v string) *string { return &v }

// newLedgerStore returns a memory store loaded with one USD entity, two active books and a
// small chart of accounts, plus a second entity used for ownership checks.
func newLedgerStore() *memory.Store {
	ctx := context.Background()
	store := memory.NewStore()

	for _, c := range []domain.Currency{
		{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
		{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
		{CurrencyCode: "GBP", Symbol: "£", Name: "Pound Sterling", Precision: 2},
	} {
		_ = store.SaveCurrency(ctx, c)
	}
	_ = store.SaveEntity(ctx, domain.Entity{EntityID: entityID, Code: "US01", Name: "US Operations", BaseCurrency: "USD"})
	_ = store.SaveEntity(ctx, domain.Entity{EntityID: otherEntity, Code: "UK01", Name: "UK Operations", BaseCurrency: "GBP"})

	for _, b := range []domain.LedgerBook{
		{BookID: bookLocal, EntityID: entityID, Code: "LOCAL", Name: "Local GAAP", IsActive: true},
		{BookID: bookGroup, EntityID: entityID, Code: "GROUP", Name: "Group IFRS", IsActive: true},
		{BookID: bookInactive, EntityID: entityID, Code: "OLD", Name: "Retired", IsActive: false},
		{BookID: bookForeign, EntityID: otherEntity, Code: "LOCAL", Name: "UK GAAP", IsActive: true},
	} {
		_ = store.SaveBook(ctx, b)
	}

	current := acctCurrent
	for _, a := range []domain.Account{
		{AccountID: acctCurrent, EntityID: entityID, Code: "1000", Name: "Current Assets", AccountType: domain.Asset, IsActive: true},
		{AccountID: acctCash, EntityID: entityID, Code: "1110", Name: "Cash", AccountType: domain.Asset, ParentAccountID: &current, IsActive: true},
		{AccountID: acctAR, EntityID: entityID, Code: "1200", Name: "Accounts Receivable", AccountType: domain.Asset, ParentAccountID: &current, IsActive: true},
		{AccountID: acctAP, EntityID: entityID, Code: "2100", Name: "Accounts Payable", AccountType: domain.Liability, IsActive: true},
		{AccountID: acctEquity, EntityID: entityID, Code: "3100", Name: "Share Capital", AccountType: domain.Equity, IsActive: true},
		{AccountID: acctRevenue, EntityID: entityID, Code: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true},
		{AccountID: acctCOGS, EntityID: entityID, Code: "5000", Name: "Cost of Sales", AccountType: domain.COGS, IsActive: true},
		{AccountID: acctRent, EntityID: entityID, Code: "6000", Name: "Rent", AccountType: domain.Expense, IsActive: true},
		{AccountID: acctInactive, EntityID: entityID, Code: "9999", Name: "Suspense (closed)", AccountType: domain.Asset, IsActive: false},
		{AccountID: acctForeign, EntityID: otherEntity, Code: "1110", Name: "Cash", AccountType: domain.Asset, IsActive: true},
	} {
		_ = store.SaveAccount(ctx, a)
	}

	_ = store.SaveFxRate(ctx, domain.FxRate{RateID: "fx-eur", FromCurrency: "EUR", ToCurrency: "USD", Rate: dec("1.10"), EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	_ = store.SaveFxRate(ctx, domain.FxRate{RateID: "fx-gbp", FromCurrency: "GBP", ToCurrency: "USD", Rate: dec("1.2345"), EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	return store
}

func debitLine(n int, account, amount string) dto.CreateJournalLineRequest {
	return dto.CreateJournalLineRequest{LineNumber: n, AccountID: account, Debit: dec(amount), Credit: decimal.Zero}
}

func creditLine(n int, account, amount string) dto.CreateJournalLineRequest {
	return dto.CreateJournalLineRequest{LineNumber: n, AccountID: account, Debit: decimal.Zero, Credit: dec(amount)}
}

func inCurrency(l dto.CreateJournalLineRequest, ccy string) dto.CreateJournalLineRequest {
	l.CurrencyCode = ccy
	return l
}

func journalRequest(date string, books []string, lines ...dto.CreateJournalLineRequest) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		EntityID:    entityID,
		BookIDs:     books,
		JournalDate: date,
		Description: "Test journal",
		Lines:       lines,
	}
}

// --- Mock ReportInvalidator ---
type MockReportInvalidator struct {
	mock.Mock
}

func (m *MockReportInvalidator) InvalidateEntity(ctx context.Context, entityID string) error {
	args := m.Called(ctx, entityID)
	return args.Error(0)
}
