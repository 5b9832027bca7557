package domain

import (
	"errors"
	"fmt"
)

// Kind classifies failures so callers can pick a response without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindContent
	KindStore
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindContent:
		return "content"
	case KindStore:
		return "store"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Op != "":
		return e.Op
	default:
		return e.Kind.String() + " error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// TransportError marks a navigation or network failure during page acquisition.
func TransportError(op string, err error) error {
	return newError(KindTransport, op, err)
}

// ContentError marks a page that loaded but lacked required fields.
func ContentError(op string, err error) error {
	return newError(KindContent, op, err)
}

// StoreError marks a failed read or write against the tabular store.
func StoreError(op string, err error) error {
	return newError(KindStore, op, err)
}

// ValidationError marks malformed caller input.
func ValidationError(msg string) error {
	return newError(KindValidation, "", errors.New(msg))
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
