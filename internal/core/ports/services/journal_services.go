package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalPostingSvc defines the state-changing operations of the posting engine.
// Expected failures are reported inside the result, never as a panic or partial write.
type JournalPostingSvc interface {
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actorID string) domain.PostingResult
	ApproveJournal(ctx context.Context, journalID, actorID string) domain.PostingResult
	PostJournal(ctx context.Context, journalID, actorID string, opts domain.PostOptions) domain.PostingResult
	ReverseJournal(ctx context.Context, journalID, actorID, reason string) domain.PostingResult
}

// JournalReaderSvc defines read operations over journals.
type JournalReaderSvc interface {
	GetJournal(ctx context.Context, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, *string, error)
	ListJournalAuditLogs(ctx context.Context, journalID string) ([]domain.AuditLog, error)
}

// PostingSvcFacade combines all journal service interfaces.
type PostingSvcFacade interface {
	JournalPostingSvc
	JournalReaderSvc
}
