package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeJournalCursor(t *testing.T) {
	cursor := JournalCursor{
		JournalDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 3, 15, 14, 30, 45, 123456789, time.UTC),
		JournalID:   "2f1c7a9e-1111-4d2b-9a7c-0a1b2c3d4e5f",
	}

	token := EncodeJournalCursor(cursor)
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")

	decoded, err := DecodeJournalCursor(token)
	require.NoError(t, err)
	assert.True(t, cursor.JournalDate.Equal(decoded.JournalDate))
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, cursor.JournalID, decoded.JournalID)
}

func TestDecodeJournalCursorError(t *testing.T) {
	_, err := DecodeJournalCursor("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeJournalCursor(EncodeMultiFieldToken("2024-03-15T00:00:00Z"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeJournalCursor(EncodeMultiFieldToken("notadate", "2024-03-15T00:00:00Z", "id"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal date parse")

	_, err = DecodeJournalCursor(EncodeMultiFieldToken("2024-03-15T00:00:00Z", "notatime", "id"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestJournalCursorBefore(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	created := day.Add(10 * time.Hour)
	cursor := JournalCursor{JournalDate: day, CreatedAt: created, JournalID: "m"}

	assert.True(t, cursor.Before(day.AddDate(0, 0, -1), created, "z"), "earlier date goes to next page")
	assert.False(t, cursor.Before(day.AddDate(0, 0, 1), created, "a"), "later date was already listed")
	assert.True(t, cursor.Before(day, created.Add(-time.Second), "z"))
	assert.True(t, cursor.Before(day, created, "a"))
	assert.False(t, cursor.Before(day, created, "m"), "the cursor row itself is excluded")
}

func TestEncodeMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	decoded, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...))
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)

	// When splitting an empty string with strings.Split, we get a slice with one empty string
	decodedEmpty, err := DecodeMultiFieldToken(EncodeMultiFieldToken())
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, decodedEmpty)

	decodedSpecial, err := DecodeMultiFieldToken(EncodeMultiFieldToken("field|with|pipes", "field with spaces"))
	assert.NoError(t, err)
	assert.Len(t, decodedSpecial, 4, "Should split on all pipe characters")
}
