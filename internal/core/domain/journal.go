package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Approved JournalStatus = "APPROVED"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
	Void     JournalStatus = "VOID"
)

// AffectsLedger reports whether lines of a journal in this status count towards balances.
// A REVERSED journal stays in the ledger next to the reversal that offsets it.
func (s JournalStatus) AffectsLedger() bool {
	return s == Posted || s == Reversed
}

// JournalType classifies the business purpose of a journal.
type JournalType string

const (
	Standard         JournalType = "STANDARD"
	Opening          JournalType = "OPENING"
	Closing          JournalType = "CLOSING"
	Adjustment       JournalType = "ADJUSTMENT"
	Reclassification JournalType = "RECLASSIFICATION"
	Reversing        JournalType = "REVERSING"
)

// Valid reports whether t is one of the known journal types.
func (t JournalType) Valid() bool {
	switch t {
	case Standard, Opening, Closing, Adjustment, Reclassification, Reversing:
		return true
	}
	return false
}

const (
	SourceManual   = "MANUAL"
	SourceReversal = "REVERSAL"
)

// Journal is the header of one accounting entry. Lines holds every book's copy of the line set.
type Journal struct {
	JournalID     string        `json:"journalID"`
	EntityID      string        `json:"entityID"`
	JournalNumber string        `json:"journalNumber"` // JNL-{period}-{seq}
	Sequence      int           `json:"sequence"`
	JournalDate   time.Time     `json:"journalDate"`
	Period        string        `json:"period"` // YYYY-MM derived from JournalDate
	JournalType   JournalType   `json:"journalType"`
	Description   string        `json:"description"`
	Reference     string        `json:"reference,omitempty"`
	Source        string        `json:"source"`
	SourceID      *string       `json:"sourceID,omitempty"`
	Status        JournalStatus `json:"status"`
	ReversalOfID  *string       `json:"reversalOfID,omitempty"` // Set on the reversing journal
	ApprovedAt    *time.Time    `json:"approvedAt,omitempty"`
	ApprovedBy    *string       `json:"approvedBy,omitempty"`
	PostedAt      *time.Time    `json:"postedAt,omitempty"`
	PostedBy      *string       `json:"postedBy,omitempty"`
	Lines         []JournalLine `json:"lines"`
	AuditFields
}

// BookIDs returns the distinct books the journal's lines were fanned out to, in first-seen order.
func (j Journal) BookIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, l := range j.Lines {
		if _, ok := seen[l.BookID]; ok {
			continue
		}
		seen[l.BookID] = struct{}{}
		ids = append(ids, l.BookID)
	}
	return ids
}

// LinesByBook groups the journal's lines by book.
func (j Journal) LinesByBook() map[string][]JournalLine {
	out := make(map[string][]JournalLine)
	for _, l := range j.Lines {
		out[l.BookID] = append(out[l.BookID], l)
	}
	return out
}

// LogicalLines returns one line per line number (the first book's copy), ordered as stored.
func (j Journal) LogicalLines() []JournalLine {
	seen := make(map[int]struct{})
	var out []JournalLine
	for _, l := range j.Lines {
		if _, ok := seen[l.LineNumber]; ok {
			continue
		}
		seen[l.LineNumber] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Dimensions are optional analytic tags on a line.
type Dimensions struct {
	DepartmentID string `json:"departmentID,omitempty"`
	ProjectID    string `json:"projectID,omitempty"`
	CustomerID   string `json:"customerID,omitempty"`
}

// JournalLine is one debit or credit against one account in one book.
// Debit and Credit are booked in the entity's base currency; CurrencyCode,
// AmountOriginal and FxRate describe the transaction currency the line was entered in.
type JournalLine struct {
	LineID         string           `json:"lineID"`
	JournalID      string           `json:"journalID"`
	BookID         string           `json:"bookID"`
	LineNumber     int              `json:"lineNumber"`
	AccountID      string           `json:"accountID"`
	Debit          decimal.Decimal  `json:"debit"`
	Credit         decimal.Decimal  `json:"credit"`
	CurrencyCode   string           `json:"currencyCode"`
	AmountOriginal decimal.Decimal  `json:"amountOriginal"`
	FxRate         *decimal.Decimal `json:"fxRate,omitempty"` // Nil when no conversion was applied
	Dimensions     Dimensions       `json:"dimensions"`
	SubledgerType  string           `json:"subledgerType,omitempty"`
	SubledgerID    string           `json:"subledgerID,omitempty"`
	Description    string           `json:"description,omitempty"`
	Reference      string           `json:"reference,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// Amount is the booked amount on whichever side the line sits.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.GreaterThan(l.Credit) {
		return l.Debit
	}
	return l.Credit
}

// IsDebit reports whether the line sits on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// JournalFilter selects journals for listing.
type JournalFilter struct {
	EntityID  string
	Status    JournalStatus
	Period    string
	Limit     int
	NextToken *string
}

// StatusTransition describes a conditional status update: it only applies while the
// journal is still in one of From.
type StatusTransition struct {
	JournalID  string
	From       []JournalStatus
	To         JournalStatus
	ApprovedAt *time.Time
	ApprovedBy *string
	PostedAt   *time.Time
	PostedBy   *string
	UpdatedAt  time.Time
	UpdatedBy  string
}
