package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
)

func validationError(field, format string, args ...any) domain.PostingError {
	return domain.PostingError{Code: apperrors.CodeValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// validateCreateShape checks required fields and cardinalities before any I/O.
func validateCreateShape(req dto.CreateJournalRequest) (time.Time, []domain.PostingError) {
	var errs []domain.PostingError
	if strings.TrimSpace(req.EntityID) == "" {
		errs = append(errs, validationError("entityID", "entityID is required"))
	}
	if len(req.BookIDs) == 0 {
		errs = append(errs, validationError("bookIDs", "at least one book is required"))
	}
	for i, id := range req.BookIDs {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, validationError(fmt.Sprintf("bookIDs[%d]", i), "book id must not be empty"))
		}
	}
	journalDate, err := time.Parse(time.DateOnly, req.JournalDate)
	if err != nil {
		errs = append(errs, validationError("journalDate", "journalDate must be a YYYY-MM-DD date"))
	}
	if strings.TrimSpace(req.Description) == "" {
		errs = append(errs, validationError("description", "description is required"))
	}
	if req.JournalType != "" && !req.JournalType.Valid() {
		errs = append(errs, validationError("journalType", "unknown journal type %q", req.JournalType))
	}
	if len(req.Lines) < 2 {
		errs = append(errs, validationError("lines", "a journal needs at least two lines"))
	}
	seen := make(map[int]struct{}, len(req.Lines))
	for i, l := range req.Lines {
		field := fmt.Sprintf("lines[%d]", i)
		if l.LineNumber <= 0 {
			errs = append(errs, validationError(field+".lineNumber", "lineNumber must be positive"))
		} else if _, dup := seen[l.LineNumber]; dup {
			errs = append(errs, validationError(field+".lineNumber", "lineNumber %d is used twice", l.LineNumber))
		}
		seen[l.LineNumber] = struct{}{}
		if strings.TrimSpace(l.AccountID) == "" {
			errs = append(errs, validationError(field+".accountID", "accountID is required"))
		}
		if l.CurrencyCode != "" && len(l.CurrencyCode) != 3 {
			errs = append(errs, validationError(field+".currencyCode", "currencyCode must be a 3 letter code"))
		}
	}
	return journalDate, errs
}

// validateLineSides enforces that exactly one of debit and credit is strictly positive.
func validateLineSides(lines []dto.CreateJournalLineRequest) []domain.PostingError {
	var errs []domain.PostingError
	for _, l := range lines {
		if msg := sideViolation(l.Debit, l.Credit); msg != "" {
			errs = append(errs, lineError(l.LineNumber, msg))
		}
	}
	return errs
}

// validateBookedSides repeats the side check on base-currency amounts, which rounding
// can shrink to zero.
func validateBookedSides(booked []bookedLine, baseCurrency string) []domain.PostingError {
	var errs []domain.PostingError
	for _, b := range booked {
		msg := sideViolation(b.debit, b.credit)
		if msg == "" {
			continue
		}
		if b.debit.IsZero() && b.credit.IsZero() {
			msg = fmt.Sprintf("Line converts to zero %s; %s %s is below the smallest %s unit",
				baseCurrency, maxOf(b.req.Debit, b.req.Credit).String(), b.req.CurrencyCode, baseCurrency)
		}
		errs = append(errs, lineError(b.req.LineNumber, msg))
	}
	return errs
}

// validatePersistedSides checks stored lines once per line number.
func validatePersistedSides(lines []domain.JournalLine) *domain.PostingError {
	seen := make(map[int]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.LineNumber]; ok {
			continue
		}
		seen[l.LineNumber] = struct{}{}
		if msg := sideViolation(l.Debit, l.Credit); msg != "" {
			perr := lineError(l.LineNumber, msg)
			return &perr
		}
	}
	return nil
}

func sideViolation(debit, credit decimal.Decimal) string {
	switch {
	case debit.IsNegative() || credit.IsNegative():
		return "Line amounts cannot be negative"
	case debit.IsPositive() && credit.IsPositive():
		return "Line cannot have both debit and credit"
	case !debit.IsPositive() && !credit.IsPositive():
		return "Line must have either debit or credit"
	}
	return ""
}

func lineError(lineNumber int, msg string) domain.PostingError {
	return domain.PostingError{Code: apperrors.CodeInvalidLine, LineNumber: lineNumber, Message: msg}
}

func unbalancedError(res ledger.BalanceResult) domain.PostingError {
	diffs := res.Unbalanced()
	parts := make([]string, 0, len(diffs))
	for _, ccy := range res.Currencies() {
		if d, ok := diffs[ccy]; ok {
			parts = append(parts, fmt.Sprintf("%s %s", ccy, d.String()))
		}
	}
	return domain.PostingError{
		Code:        apperrors.CodeJournalUnbalance,
		Message:     "Journal is not balanced. Differences: " + strings.Join(parts, ", "),
		Differences: diffs,
	}
}

func balanceLinesOf(lines []dto.CreateJournalLineRequest) []ledger.BalanceLine {
	out := make([]ledger.BalanceLine, len(lines))
	for i, l := range lines {
		out[i] = ledger.BalanceLine{Debit: l.Debit, Credit: l.Credit, CurrencyCode: l.CurrencyCode}
	}
	return out
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func maxOf(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
