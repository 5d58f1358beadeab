package formula

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidNumber  Kind = "invalid_number"
	KindDomain         Kind = "domain_error"
	KindNoRealSolution Kind = "no_real_solution"
	KindUnknownUnit    Kind = "unknown_unit"
	KindInvalidRequest Kind = "invalid_request"
	KindUnsupported    Kind = "unsupported"
)

var (
	ErrInvalidNumber  = errors.New("invalid number")
	ErrDomain         = errors.New("value out of domain")
	ErrNoRealSolution = errors.New("no real solution")
	ErrUnknownUnit    = errors.New("unknown unit")
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnsupported    = errors.New("unsupported combination")
)

var sentinels = map[Kind]error{
	KindInvalidNumber:  ErrInvalidNumber,
	KindDomain:         ErrDomain,
	KindNoRealSolution: ErrNoRealSolution,
	KindUnknownUnit:    ErrUnknownUnit,
	KindInvalidRequest: ErrInvalidRequest,
	KindUnsupported:    ErrUnsupported,
}

// Error is the user-facing validation error produced instead of a Result.
// Message is meant to be shown as is.
type Error struct {
	Kind    Kind   `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func newError(kind Kind, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

func InvalidNumberf(field, format string, args ...any) error {
	return newError(KindInvalidNumber, field, format, args...)
}

func Domainf(field, format string, args ...any) error {
	return newError(KindDomain, field, format, args...)
}

func NoRealSolutionf(format string, args ...any) error {
	return newError(KindNoRealSolution, "", format, args...)
}

func UnknownUnitf(field, format string, args ...any) error {
	return newError(KindUnknownUnit, field, format, args...)
}

func InvalidRequestf(field, format string, args ...any) error {
	return newError(KindInvalidRequest, field, format, args...)
}

func Unsupportedf(format string, args ...any) error {
	return newError(KindUnsupported, "", format, args...)
}

// AsError reports whether err carries a validation error and returns it.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
