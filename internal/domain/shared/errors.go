package shared

import "errors"

// ErrorKind classifies a domain failure. The set is closed: every error that
// crosses the application boundary carries exactly one of these kinds, and the
// HTTP layer maps kinds (never message text) to status codes.
type ErrorKind string

const (
	ErrKindItemNotFound               ErrorKind = "ITEM_NOT_FOUND"
	ErrKindItemAlreadyExist           ErrorKind = "ITEM_ALREADY_EXIST"
	ErrKindInvalidRequest             ErrorKind = "INVALID_REQUEST"
	ErrKindExternalSourceNotSupported ErrorKind = "EXTERNAL_SOURCE_NOT_SUPPORTED"
	ErrKindExternalSourceCallError    ErrorKind = "EXTERNAL_SOURCE_CALL_ERROR"
	ErrKindCurrencyServiceCallError   ErrorKind = "CURRENCY_SERVICE_CALL_ERROR"
	ErrKindInvalidConfiguration       ErrorKind = "INVALID_CONFIGURATION"
	ErrKindUnknown                    ErrorKind = "UNKNOWN"
)

// defaultMessages holds the fixed human-readable message for each kind.
var defaultMessages = map[ErrorKind]string{
	ErrKindItemNotFound:               "Requested item could not be found.",
	ErrKindItemAlreadyExist:           "The item already exists.",
	ErrKindInvalidRequest:             "The request is invalid.",
	ErrKindExternalSourceNotSupported: "The given external source is not supported.",
	ErrKindExternalSourceCallError:    "Calling the external source failed.",
	ErrKindCurrencyServiceCallError:   "Calling the currency service failed.",
	ErrKindInvalidConfiguration:       "The configuration is incomplete/invalid.",
	ErrKindUnknown:                    "Unknown error.",
}

// DefaultMessage returns the fixed message for a kind. Unknown kinds fall back
// to the Unknown message.
func DefaultMessage(kind ErrorKind) string {
	if msg, ok := defaultMessages[kind]; ok {
		return msg
	}
	return defaultMessages[ErrKindUnknown]
}

// DomainError represents a classified domain-level error. It carries the kind,
// the kind's default message, an optional free-text detail and an optional
// wrapped cause.
type DomainError struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := DefaultMessage(e.Kind)
	if e.Detail != "" {
		return msg + " " + e.Detail
	}
	return msg
}

// Unwrap returns the wrapped cause, if any.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewError creates a domain error of the given kind.
func NewError(kind ErrorKind) *DomainError {
	return &DomainError{Kind: kind}
}

// NewErrorWithDetail creates a domain error with a free-text detail appended to
// the default message.
func NewErrorWithDetail(kind ErrorKind, detail string) *DomainError {
	return &DomainError{Kind: kind, Detail: detail}
}

// WrapError creates a domain error that wraps an underlying cause.
func WrapError(kind ErrorKind, cause error, detail string) *DomainError {
	return &DomainError{Kind: kind, Detail: detail, Cause: cause}
}

// KindOf returns the kind of err. Errors that are not DomainError (directly or
// wrapped) classify as Unknown; nil classifies as empty.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ErrKindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
