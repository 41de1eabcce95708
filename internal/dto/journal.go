package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one line of a journal creation request, in its transaction currency.
type CreateJournalLineRequest struct {
	LineNumber     int               `json:"lineNumber" binding:"required,gt=0"`
	AccountID      string            `json:"accountID" binding:"required"`
	Debit          decimal.Decimal   `json:"debit" binding:"dgte0"`
	Credit         decimal.Decimal   `json:"credit" binding:"dgte0"`
	CurrencyCode   string            `json:"currencyCode,omitempty" binding:"omitempty,len=3,uppercase"` // Defaults to the entity base currency
	AmountOriginal *decimal.Decimal  `json:"amountOriginal,omitempty" binding:"omitempty,dgt0"`
	Dimensions     domain.Dimensions `json:"dimensions"`
	SubledgerType  string            `json:"subledgerType,omitempty" binding:"omitempty,max=50"`
	SubledgerID    string            `json:"subledgerID,omitempty" binding:"omitempty,max=100"`
	Description    string            `json:"description,omitempty" binding:"omitempty,max=500"`
	Reference      string            `json:"reference,omitempty" binding:"omitempty,max=100"`
}

// CreateJournalRequest is the input of createJournal.
type CreateJournalRequest struct {
	EntityID    string                     `json:"entityID" binding:"required"`
	BookIDs     []string                   `json:"bookIDs" binding:"required,min=1,dive,required"`
	JournalDate string                     `json:"journalDate" binding:"required,datetime=2006-01-02"`
	JournalType domain.JournalType         `json:"journalType,omitempty"` // Defaults to STANDARD
	Description string                     `json:"description" binding:"required,max=500"`
	Reference   string                     `json:"reference,omitempty" binding:"omitempty,max=100"`
	Source      string                     `json:"source,omitempty" binding:"omitempty,max=50"` // Defaults to MANUAL
	SourceID    *string                    `json:"sourceID,omitempty"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// PostJournalRequest carries the optional overrides of postJournal.
type PostJournalRequest struct {
	SkipBalanceCheck    bool   `json:"skipBalanceCheck"`
	SkipPeriodLockCheck bool   `json:"skipPeriodLockCheck"`
	SkipApprovalCheck   bool   `json:"skipApprovalCheck"`
	BypassActor         string `json:"bypassActor,omitempty"`
}

// ToOptions converts the request into domain post options.
func (r PostJournalRequest) ToOptions() domain.PostOptions {
	return domain.PostOptions{
		SkipBalanceCheck:    r.SkipBalanceCheck,
		SkipPeriodLockCheck: r.SkipPeriodLockCheck,
		SkipApprovalCheck:   r.SkipApprovalCheck,
		BypassActor:         r.BypassActor,
	}
}

// ReverseJournalRequest carries the mandatory reversal reason.
type ReverseJournalRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListJournalsParams are the query parameters of the journal listing.
type ListJournalsParams struct {
	EntityID  string `form:"entityID" binding:"required"`
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT APPROVED POSTED REVERSED VOID"`
	Period    string `form:"period" binding:"omitempty,yyyymm"`
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// JournalLineResponse is one stored line.
type JournalLineResponse struct {
	LineID         string            `json:"lineID"`
	BookID         string            `json:"bookID"`
	LineNumber     int               `json:"lineNumber"`
	AccountID      string            `json:"accountID"`
	Debit          decimal.Decimal   `json:"debit"`
	Credit         decimal.Decimal   `json:"credit"`
	CurrencyCode   string            `json:"currencyCode"`
	AmountOriginal decimal.Decimal   `json:"amountOriginal"`
	FxRate         *decimal.Decimal  `json:"fxRate,omitempty"`
	Dimensions     domain.Dimensions `json:"dimensions"`
	SubledgerType  string            `json:"subledgerType,omitempty"`
	SubledgerID    string            `json:"subledgerID,omitempty"`
	Description    string            `json:"description,omitempty"`
	Reference      string            `json:"reference,omitempty"`
}

// JournalResponse is a journal header, optionally with its lines.
type JournalResponse struct {
	JournalID     string                `json:"journalID"`
	EntityID      string                `json:"entityID"`
	JournalNumber string                `json:"journalNumber"`
	JournalDate   string                `json:"journalDate"`
	Period        string                `json:"period"`
	JournalType   string                `json:"journalType"`
	Description   string                `json:"description"`
	Reference     string                `json:"reference,omitempty"`
	Source        string                `json:"source"`
	SourceID      *string               `json:"sourceID,omitempty"`
	Status        string                `json:"status"`
	ReversalOfID  *string               `json:"reversalOfID,omitempty"`
	BookIDs       []string              `json:"bookIDs,omitempty"`
	ApprovedAt    *time.Time            `json:"approvedAt,omitempty"`
	ApprovedBy    *string               `json:"approvedBy,omitempty"`
	PostedAt      *time.Time            `json:"postedAt,omitempty"`
	PostedBy      *string               `json:"postedBy,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	Lines         []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalsResponse is a page of journal headers.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
