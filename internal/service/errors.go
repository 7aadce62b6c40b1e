package service

import "errors"

var errStorageNotConfigured = errors.New("storage service not configured")

// Kind classifies workflow failures so the HTTP boundary can shape a
// uniform response without inspecting error strings.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindStore      Kind = "store"
)

// Error is a workflow failure tagged with its kind. The wrapped cause, if
// any, is preserved for logging but never required for classification.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func validationError(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }

func conflictError(msg string) error { return &Error{Kind: KindConflict, Msg: msg} }

func notFoundError(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }

func authError(msg string) error { return &Error{Kind: KindAuth, Msg: msg} }

func storeError(msg string, err error) error { return &Error{Kind: KindStore, Msg: msg, Err: err} }

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given workflow failure kind.
func IsKind(err error, kind Kind) bool {
	k, ok := kindOf(err)
	return ok && k == kind
}
