package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// JournalCursor marks the last journal of a page. Journals are listed by
// journal date, creation time and ID, all descending.
type JournalCursor struct {
	JournalDate time.Time
	CreatedAt   time.Time
	JournalID   string
}

// Before reports whether a journal sorts after the cursor in the listing order, i.e. belongs to the next page.
func (c JournalCursor) Before(journalDate, createdAt time.Time, journalID string) bool {
	if !journalDate.Equal(c.JournalDate) {
		return journalDate.Before(c.JournalDate)
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.Before(c.CreatedAt)
	}
	return journalID < c.JournalID
}

// EncodeJournalCursor creates an opaque, URL-safe token for a journal cursor.
func EncodeJournalCursor(c JournalCursor) string {
	return EncodeMultiFieldToken(c.JournalDate.UTC().Format(timeFormat), c.CreatedAt.UTC().Format(timeFormat), c.JournalID)
}

// DecodeJournalCursor parses a token produced by EncodeJournalCursor.
func DecodeJournalCursor(token string) (JournalCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return JournalCursor{}, err
	}
	if len(parts) != 3 || parts[2] == "" {
		return JournalCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}
	journalDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return JournalCursor{}, fmt.Errorf("invalid pagination token format (journal date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return JournalCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return JournalCursor{JournalDate: journalDate, CreatedAt: createdAt, JournalID: parts[2]}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
