package domain

import (
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Severity grades a posting warning.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

const (
	WarningFxRounding       = "FX_ROUNDING_DIFFERENCE"
	WarningApprovalRequired = "APPROVAL_WILL_BE_REQUIRED"
)

// PostingError is one blocking problem found by a posting operation.
type PostingError struct {
	Code        apperrors.ErrorCode        `json:"code"`
	Message     string                     `json:"message"`
	Field       string                     `json:"field,omitempty"`
	LineNumber  int                        `json:"lineNumber,omitempty"`
	Differences map[string]decimal.Decimal `json:"differences,omitempty"` // Per currency debit - credit
}

// Warning is a non-blocking observation attached to a successful or failed result.
type Warning struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// PostingResult is the outcome of createJournal, approveJournal, postJournal and reverseJournal.
type PostingResult struct {
	Success       bool           `json:"success"`
	JournalID     string         `json:"journalID,omitempty"`
	JournalNumber string         `json:"journalNumber,omitempty"`
	Errors        []PostingError `json:"errors"`
	Warnings      []Warning      `json:"warnings"`
}

// Failed builds an unsuccessful result carrying errs.
func Failed(errs ...PostingError) PostingResult {
	return PostingResult{Errors: errs, Warnings: []Warning{}}
}

// Succeeded builds a successful result for the given journal.
func Succeeded(journalID, journalNumber string, warnings []Warning) PostingResult {
	if warnings == nil {
		warnings = []Warning{}
	}
	return PostingResult{
		Success:       true,
		JournalID:     journalID,
		JournalNumber: journalNumber,
		Errors:        []PostingError{},
		Warnings:      warnings,
	}
}

// FirstError returns the first blocking error or nil.
func (r PostingResult) FirstError() *PostingError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// HasError reports whether any error carries code.
func (r PostingResult) HasError(code apperrors.ErrorCode) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// PostOptions lets a trusted caller skip individual checks of postJournal.
type PostOptions struct {
	SkipBalanceCheck    bool   `json:"skipBalanceCheck"`
	SkipPeriodLockCheck bool   `json:"skipPeriodLockCheck"`
	SkipApprovalCheck   bool   `json:"skipApprovalCheck"`
	BypassActor         string `json:"bypassActor,omitempty"` // Recorded as postedBy when set
}
