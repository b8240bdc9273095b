package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInterviewerNotFound = errors.New("interviewer not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrBusyBlockNotFound   = errors.New("busy block not found")
	ErrConflict            = errors.New("scheduling conflict")
	ErrNoMatch             = errors.New("no suitable match")
	ErrTransactionAborted  = errors.New("transaction aborted")
	ErrCacheMiss           = errors.New("cache miss")
)

// ValidationError is a pre-store rejection of malformed input. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError carries the records a candidate interval collided with so the
// caller can offer alternatives.
type ConflictError struct {
	Interviews []Interview
	BusyBlocks []BusyBlock
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict: %d interview(s), %d busy block(s)", len(e.Interviews), len(e.BusyBlocks))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// TransactionAbortError wraps a store-level failure that rolled back the whole
// enclosing transaction. The caller resubmits.
type TransactionAbortError struct {
	Err error
}

func (e *TransactionAbortError) Error() string {
	return fmt.Sprintf("transaction aborted: %v", e.Err)
}

func (e *TransactionAbortError) Unwrap() error { return e.Err }

func (e *TransactionAbortError) Is(target error) bool { return target == ErrTransactionAborted }

// BatchItemError is a per-operation soft failure inside an otherwise
// successful batch. The operation was skipped; the rest proceeded.
type BatchItemError struct {
	Index int
	Kind  string
	Err   error
}

func (e *BatchItemError) Error() string {
	return fmt.Sprintf("batch item %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *BatchItemError) Unwrap() error { return e.Err }
