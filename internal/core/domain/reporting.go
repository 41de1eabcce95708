package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the tolerance used by reports to flag a trial balance as balanced.
var BalanceEpsilon = decimal.RequireFromString("0.01")

// TrialBalanceQuery scopes a trial balance. Period takes precedence over AsOf.
type TrialBalanceQuery struct {
	EntityID           string
	BookID             string
	Period             string
	AsOf               *time.Time
	IncludeSubAccounts bool
}

// LineSumQuery scopes a grouped sum over posted lines.
type LineSumQuery struct {
	EntityID  string
	BookID    string
	AccountID string
	Period    string
	AsOf      *time.Time
}

// AccountTotals is the raw per-account aggregate returned by the store.
type AccountTotals struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// TrialBalanceRow is one account in a trial balance.
type TrialBalanceRow struct {
	AccountID       string          `json:"accountID"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID *string         `json:"parentAccountID,omitempty"`
	Depth           int             `json:"depth"`
	Rollup          bool            `json:"rollup"` // True when Debit/Credit include descendants
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"` // Debit - Credit
}

// TrialBalance is the per-account aggregation of posted lines.
type TrialBalance struct {
	EntityID     string            `json:"entityID"`
	BookID       string            `json:"bookID,omitempty"`
	Period       string            `json:"period,omitempty"`
	AsOf         *time.Time        `json:"asOf,omitempty"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	Difference   decimal.Decimal   `json:"difference"`
	IsBalanced   bool              `json:"isBalanced"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}

// StatementLine is one account on a financial statement, signed to its normal balance.
type StatementLine struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatement partitions revenue, cost of goods sold and expenses.
type IncomeStatement struct {
	EntityID      string          `json:"entityID"`
	BookID        string          `json:"bookID,omitempty"`
	Period        string          `json:"period,omitempty"`
	AsOf          *time.Time      `json:"asOf,omitempty"`
	Revenue       []StatementLine `json:"revenue"`
	COGS          []StatementLine `json:"cogs"`
	Expenses      []StatementLine `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalCOGS     decimal.Decimal `json:"totalCOGS"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheet partitions assets, liabilities and equity.
type BalanceSheet struct {
	EntityID                  string          `json:"entityID"`
	BookID                    string          `json:"bookID,omitempty"`
	Period                    string          `json:"period,omitempty"`
	AsOf                      *time.Time      `json:"asOf,omitempty"`
	Assets                    []StatementLine `json:"assets"`
	Liabilities               []StatementLine `json:"liabilities"`
	Equity                    []StatementLine `json:"equity"`
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	UnclosedEarnings          decimal.Decimal `json:"unclosedEarnings"` // Net income not yet closed to equity
	IsBalanced                bool            `json:"isBalanced"`
}

// AccountLedgerQuery scopes an account ledger listing.
type AccountLedgerQuery struct {
	AccountID string
	BookID    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// LedgerEntry is one posted line in an account ledger.
type LedgerEntry struct {
	JournalID          string          `json:"journalID"`
	JournalNumber      string          `json:"journalNumber"`
	JournalDate        time.Time       `json:"journalDate"`
	JournalDescription string          `json:"journalDescription"`
	LineID             string          `json:"lineID"`
	BookID             string          `json:"bookID"`
	LineNumber         int             `json:"lineNumber"`
	Description        string          `json:"description"`
	Reference          string          `json:"reference,omitempty"`
	Debit              decimal.Decimal `json:"debit"`
	Credit             decimal.Decimal `json:"credit"`
	CurrencyCode       string          `json:"currencyCode"`
	Dimensions         Dimensions      `json:"dimensions"`
	RunningBalance     decimal.Decimal `json:"runningBalance"`
}

// AccountLedger is a paginated chronological listing of one account.
type AccountLedger struct {
	Account        Account         `json:"account"`
	BookID         string          `json:"bookID,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Entries        []LedgerEntry   `json:"entries"`
	Limit          int             `json:"limit"`
	Offset         int             `json:"offset"`
}

// AccountBalance is the posted balance of one account.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	BookID    string          `json:"bookID,omitempty"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}
