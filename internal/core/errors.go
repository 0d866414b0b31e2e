package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a product position or order code has no row.
var ErrNotFound = errors.New("not found")

// ValidationError reports missing or malformed input. Received echoes the
// values the caller sent so the client can show them back.
type ValidationError struct {
	Message  string
	Received map[string]any
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string, received map[string]any) error {
	return &ValidationError{Message: msg, Received: received}
}

// PartialWriteError is returned when an order write stopped after some of its
// steps already reached the store. Nothing is rolled back; the flags tell the
// caller what the store now holds for Code.
type PartialWriteError struct {
	Op             string // "create", "update" or "delete"
	Code           string
	RowsDeleted    int
	DetailWritten  bool
	SummaryWritten bool
	Err            error
}

func (e *PartialWriteError) Error() string {
	var done []string
	if e.RowsDeleted > 0 {
		done = append(done, fmt.Sprintf("%d old rows deleted", e.RowsDeleted))
	}
	if e.DetailWritten {
		done = append(done, "detail rows written")
	}
	if e.SummaryWritten {
		done = append(done, "summary row written")
	}
	state := "nothing written"
	if len(done) > 0 {
		state = strings.Join(done, ", ")
	}
	return fmt.Sprintf("order %s %s incomplete (%s): %v", e.Code, e.Op, state, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
