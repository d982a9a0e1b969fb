package core

import "github.com/pkg/errors"

// Error kinds. Package level sentinels carry one of these so callers can match
// on the category with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type kindError struct {
	kind error
	msg  string
}

func (err *kindError) Error() string { return err.msg }

func (err *kindError) Is(target error) bool { return target == err.kind }

// NewNotFoundError returns a sentinel error of kind ErrNotFound.
func NewNotFoundError(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

// NewConflictError returns a sentinel error of kind ErrConflict.
func NewConflictError(msg string) error {
	return &kindError{kind: ErrConflict, msg: msg}
}

// IsNotFound reports whether any error in err's chain is of kind ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether any error in err's chain is of kind ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return "validation failed"
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// StoreError reports a failure of the underlying store (unreachable, bad query...).
type StoreError struct {
	Err error
}

// NewStoreError wraps err with msg and marks it as a store failure.
// A nil err gives a nil error.
func NewStoreError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &StoreError{Err: errors.Wrap(err, msg)}
}

func (err *StoreError) Error() string { return err.Err.Error() }

func (err *StoreError) Unwrap() error { return err.Err }

func (err *StoreError) Cause() error { return err.Err }

func IsStoreError(err error) bool {
	var serr *StoreError
	return errors.As(err, &serr)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	var s *shutdown
	return errors.As(err, &s)
}
