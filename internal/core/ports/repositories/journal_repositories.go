package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a journal with all of its lines (every book's copy).
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalByIDForUpdate is FindJournalByID that also locks the journal row until the
	// enclosing transaction ends.
	FindJournalByIDForUpdate(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindReversalOf returns the journal whose ReversalOfID is journalID, or ErrNotFound.
	FindReversalOf(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals returns journal headers (no lines) newest first and a token for the next page.
	ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, *string, error)
}

// JournalSequenceStore serializes journal numbering per (entity, period).
type JournalSequenceStore interface {
	LockJournalSequence(ctx context.Context, entityID, period string) error
	MaxJournalSequence(ctx context.Context, entityID, period string) (int, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// InsertJournal persists the header and all of its lines.
	InsertJournal(ctx context.Context, journal domain.Journal) error

	// TransitionJournalStatus applies t only if the journal is currently in one of t.From.
	// It returns an error wrapping apperrors.ErrConflict otherwise.
	TransitionJournalStatus(ctx context.Context, t domain.StatusTransition) error
}

// AuditLogRepository stores the append-only journal audit trail.
type AuditLogRepository interface {
	InsertAuditLog(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogs(ctx context.Context, journalID string) ([]domain.AuditLog, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalSequenceStore
	AuditLogRepository
}
