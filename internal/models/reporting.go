package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTotals is one row of a grouped debit/credit sum.
type AccountTotals struct {
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"total_debit"`
	Credit    decimal.Decimal `db:"total_credit"`
}

// LedgerLine is a journal line joined with its journal header.
type LedgerLine struct {
	JournalID          string          `db:"journal_id"`
	JournalNumber      string          `db:"journal_number"`
	JournalDate        time.Time       `db:"journal_date"`
	JournalDescription string          `db:"journal_description"`
	LineID             string          `db:"line_id"`
	BookID             string          `db:"book_id"`
	LineNumber         int             `db:"line_number"`
	Description        string          `db:"description"`
	Reference          string          `db:"reference"`
	Debit              decimal.Decimal `db:"debit"`
	Credit             decimal.Decimal `db:"credit"`
	CurrencyCode       string          `db:"currency_code"`
	DepartmentID       string          `db:"department_id"`
	ProjectID          string          `db:"project_id"`
	CustomerID         string          `db:"customer_id"`
}
