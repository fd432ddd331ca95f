package helper

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Parsers for caller-controlled query parameters: a value that fails
// to parse is ignored rather than failing the request.

// ParseUUID returns (id, true) only for a well-formed UUID.
func ParseUUID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// ParseDate parses YYYY-MM-DD to UTC midnight.
func ParseDate(raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// SearchPattern builds the LOWER(...) LIKE pattern for substring search.
func SearchPattern(raw string) string {
	return "%" + strings.ToLower(strings.TrimSpace(raw)) + "%"
}
