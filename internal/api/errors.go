package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound signals that a plate search or vehicle lookup matched nothing.
// The UI renders it as an empty state, not as a failure toast.
var ErrNotFound = errors.New("not found")

// ConflictError is a backend rejection of a create or update, e.g. a
// duplicate plate. When the backend message names a field by keyword the
// error is mapped back to it; otherwise Field is empty and the message is
// shown as a general notice.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// TransportError wraps a network-level failure: backend unreachable, broken
// connection, malformed response. Surfaced once as a dismissible notice;
// there is no automatic retry.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// conflictKeywords maps substrings of backend rejection messages to form
// fields. The backend answers in Spanish; the English field names are kept
// as a fallback.
var conflictKeywords = []struct {
	keyword string
	field   string
}{
	{"placa", "licensePlate"},
	{"plate", "licensePlate"},
	{"marca", "brand"},
	{"brand", "brand"},
	{"año", "year"},
	{"year", "year"},
	{"kilometraje", "mileage"},
	{"mileage", "mileage"},
}

// conflictField resolves a backend message to the offending field, or ""
// when no keyword is recognized.
func conflictField(message string) string {
	lower := strings.ToLower(message)
	for _, k := range conflictKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.field
		}
	}
	return ""
}
