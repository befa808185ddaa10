package engine

import "fmt"

// ErrKind distinguishes the two flat error kinds the engine ever
// produces. The taxonomy deliberately does not enumerate per-cause
// variants; callers that need to branch on cause should inspect
// Message or build their own taxonomy on top.
type ErrKind uint8

const (
	// ErrKindCSV wraps an error from the input-layer reader: a row
	// that could not be decoded into a RawRecord at all.
	ErrKindCSV ErrKind = iota
	// ErrKindValidation covers both pre-state-machine validation
	// failures and state-machine processing failures.
	ErrKindValidation
)

// Error is the value type delivered to OnError. It is never used to
// abort a run; every error is reported for exactly the offending row
// and processing continues with the next one.
type Error struct {
	Kind ErrKind

	// Client and Tx are populated for ErrKindValidation; they are the
	// zero value for ErrKindCSV, which has no associated account.
	Client ClientId
	Tx     TxId

	Message string

	// Wrapped is the underlying reader error for ErrKindCSV, or nil
	// otherwise.
	Wrapped error
}

func (e *Error) Error() string {
	if e.Kind == ErrKindCSV {
		return fmt.Sprintf("csv: %s", e.Message)
	}
	return fmt.Sprintf("validation: client=%d tx=%d: %s", e.Client, e.Tx, e.Message)
}

// Unwrap exposes the wrapped reader error, if any, to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// csvError builds an ErrKindCSV error wrapping a reader failure.
func csvError(wrapped error) *Error {
	return &Error{Kind: ErrKindCSV, Message: wrapped.Error(), Wrapped: wrapped}
}

// validationError builds an ErrKindValidation error carrying client/tx
// context.
func validationError(client ClientId, tx TxId, format string, args ...any) *Error {
	return &Error{
		Kind:    ErrKindValidation,
		Client:  client,
		Tx:      tx,
		Message: fmt.Sprintf(format, args...),
	}
}
