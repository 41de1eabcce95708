package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

// Journal is a row of the journals table. Lines are stored in journal_lines.
type Journal struct {
	JournalID     string        `db:"journal_id"`
	EntityID      string        `db:"entity_id"`
	JournalNumber string        `db:"journal_number"`
	Sequence      int           `db:"sequence"`
	JournalDate   time.Time     `db:"journal_date"`
	Period        string        `db:"period"`
	JournalType   string        `db:"journal_type"`
	Description   string        `db:"description"`
	Reference     string        `db:"reference"`
	Source        string        `db:"source"`
	SourceID      *string       `db:"source_id"`
	Status        JournalStatus `db:"status"`
	ReversalOfID  *string       `db:"reversal_of_id"`
	ApprovedAt    *time.Time    `db:"approved_at"`
	ApprovedBy    *string       `db:"approved_by"`
	PostedAt      *time.Time    `db:"posted_at"`
	PostedBy      *string       `db:"posted_by"`
	AuditFields
}

// JournalLine is a row of the journal_lines table. Debit and Credit are in the
// entity's base currency.
type JournalLine struct {
	LineID         string           `db:"line_id"`
	JournalID      string           `db:"journal_id"`
	BookID         string           `db:"book_id"`
	LineNumber     int              `db:"line_number"`
	AccountID      string           `db:"account_id"`
	Debit          decimal.Decimal  `db:"debit"`
	Credit         decimal.Decimal  `db:"credit"`
	CurrencyCode   string           `db:"currency_code"`
	AmountOriginal decimal.Decimal  `db:"amount_original"`
	FxRate         *decimal.Decimal `db:"fx_rate"` // Nullable
	DepartmentID   string           `db:"department_id"`
	ProjectID      string           `db:"project_id"`
	CustomerID     string           `db:"customer_id"`
	SubledgerType  string           `db:"subledger_type"`
	SubledgerID    string           `db:"subledger_id"`
	Description    string           `db:"description"`
	Reference      string           `db:"reference"`
	CreatedAt      time.Time        `db:"created_at"`
}

// AuditLog is a row of the audit_logs table. OldValues and NewValues hold JSONB documents.
type AuditLog struct {
	AuditID   string    `db:"audit_id"`
	EntityID  string    `db:"entity_id"`
	JournalID string    `db:"journal_id"`
	Action    string    `db:"action"`
	ActorID   string    `db:"actor_id"`
	OldValues []byte    `db:"old_values"`
	NewValues []byte    `db:"new_values"`
	CreatedAt time.Time `db:"created_at"`
}
