package ledger

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

const journalNumberPrefix = "JNL"

// A four digit zero padded sequence, or a wider one without leading zeros, so that
// parse then format always reproduces the input.
var journalNumberPattern = regexp.MustCompile(`^JNL-(\d{4}-\d{2})-(\d{4}|[1-9]\d{4,})$`)

// FormatJournalNumber renders JNL-{period}-{seq:04}.
func FormatJournalNumber(period string, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", journalNumberPrefix, period, seq)
}

// ParseJournalNumber splits a journal number into its period and sequence.
func ParseJournalNumber(number string) (string, int, error) {
	m := journalNumberPattern.FindStringSubmatch(number)
	if m == nil {
		return "", 0, fmt.Errorf("malformed journal number %q", number)
	}
	seq, err := strconv.Atoi(m[2])
	if err != nil || seq == 0 {
		return "", 0, fmt.Errorf("malformed journal sequence in %q", number)
	}
	return m[1], seq, nil
}

// SequenceStore serializes and reads the last issued sequence of an (entity, period).
// LockJournalSequence must hold until the enclosing transaction ends.
type SequenceStore interface {
	LockJournalSequence(ctx context.Context, entityID, period string) error
	MaxJournalSequence(ctx context.Context, entityID, period string) (int, error)
}

// JournalNumberGenerator issues the next journal number for an (entity, period).
type JournalNumberGenerator struct {
	store SequenceStore
}

// NewJournalNumberGenerator creates a generator over store.
func NewJournalNumberGenerator(store SequenceStore) *JournalNumberGenerator {
	return &JournalNumberGenerator{store: store}
}

// Next locks the (entity, period) key, reads the highest sequence and returns the one after it.
// It must run inside the transaction that inserts the journal.
func (g *JournalNumberGenerator) Next(ctx context.Context, entityID, period string) (string, int, error) {
	if err := g.store.LockJournalSequence(ctx, entityID, period); err != nil {
		return "", 0, fmt.Errorf("failed to lock journal sequence %s/%s: %w", entityID, period, err)
	}
	last, err := g.store.MaxJournalSequence(ctx, entityID, period)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read journal sequence %s/%s: %w", entityID, period, err)
	}
	seq := last + 1
	return FormatJournalNumber(period, seq), seq, nil
}
