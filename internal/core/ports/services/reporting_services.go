package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingSvcFacade defines the read-only financial reports.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, q domain.TrialBalanceQuery) (*domain.TrialBalance, error)
	IncomeStatement(ctx context.Context, q domain.TrialBalanceQuery) (*domain.IncomeStatement, error)
	BalanceSheet(ctx context.Context, q domain.TrialBalanceQuery) (*domain.BalanceSheet, error)
	AccountLedger(ctx context.Context, q domain.AccountLedgerQuery) (*domain.AccountLedger, error)
	AccountBalance(ctx context.Context, accountID, bookID string, asOf *time.Time) (*domain.AccountBalance, error)
}

// ReportInvalidator is notified after postings change what reports of an entity return.
type ReportInvalidator interface {
	InvalidateEntity(ctx context.Context, entityID string) error
}
