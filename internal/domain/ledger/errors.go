// Package ledger holds the error taxonomy shared by every ledger component.
package ledger

import (
	"errors"
	"fmt"
)

// Kind is the stable, machine-readable category of a ledger failure.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindInsufficientFunds  Kind = "insufficient_funds"
	KindDuplicateAccount   Kind = "duplicate_account"
	KindExhaustedIDSpace   Kind = "exhausted_id_space"
	KindInvalidTransfer    Kind = "invalid_transfer"
	KindInvalidState       Kind = "invalid_state"
	KindStorageUnavailable Kind = "storage_unavailable"
	KindInvariantViolation Kind = "invariant_violation"
)

// Error is a kind-tagged failure. A bare Error (no Msg, no Err) acts as a
// sentinel: errors.Is matches any Error of the same kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
	ErrInsufficientFunds  = &Error{Kind: KindInsufficientFunds}
	ErrDuplicateAccount   = &Error{Kind: KindDuplicateAccount}
	ErrExhaustedIDSpace   = &Error{Kind: KindExhaustedIDSpace}
	ErrInvalidTransfer    = &Error{Kind: KindInvalidTransfer}
	ErrInvalidState       = &Error{Kind: KindInvalidState}
	ErrStorageUnavailable = &Error{Kind: KindStorageUnavailable}
	ErrInvariantViolation = &Error{Kind: KindInvariantViolation}
)

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error     { return newf(KindNotFound, format, args...) }
func InvalidInput(format string, args ...any) error { return newf(KindInvalidInput, format, args...) }
func InvalidState(format string, args ...any) error { return newf(KindInvalidState, format, args...) }

func InsufficientFunds(format string, args ...any) error {
	return newf(KindInsufficientFunds, format, args...)
}

func DuplicateAccount(format string, args ...any) error {
	return newf(KindDuplicateAccount, format, args...)
}

func ExhaustedIDSpace(format string, args ...any) error {
	return newf(KindExhaustedIDSpace, format, args...)
}

func InvalidTransfer(format string, args ...any) error {
	return newf(KindInvalidTransfer, format, args...)
}

func InvariantViolation(format string, args ...any) error {
	return newf(KindInvariantViolation, format, args...)
}

// Unavailable wraps a storage fault. The cause stays reachable via errors.Unwrap.
func Unavailable(op string, err error) error {
	return &Error{Kind: KindStorageUnavailable, Msg: op, Err: err}
}

// KindOf returns the kind of the first ledger.Error in err's chain, or ""
// when err is nil or carries no kind.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

// Retryable reports whether a caller may reasonably retry the command.
func Retryable(err error) bool { return KindOf(err) == KindStorageUnavailable }
