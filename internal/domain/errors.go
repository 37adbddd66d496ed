package domain

import "errors"

// Kind classifies a domain error. The transport layer maps each kind to
// exactly one status code.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

// Error is a domain failure with a kind discriminant. Sentinels below are
// *Error values so callers keep using errors.Is.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// NewError returns a fresh *Error. Use it for messages that carry detail;
// prefer the sentinels for everything else.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// KindOf reports the kind of the first *Error in err's chain.
// Anything else is internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrMissingFields      = NewError(KindValidation, "all fields are required")
	ErrInvalidEmail       = NewError(KindValidation, "email is not valid")
	ErrPasswordMismatch   = NewError(KindValidation, "passwords do not match")
	ErrWeakPassword       = NewError(KindValidation, "password must have at least 6 characters and contain a number")
	ErrPasswordTooLong    = NewError(KindValidation, "password must be at most 72 bytes")
	ErrEmailTaken         = NewError(KindConflict, "email is already registered")
	ErrInvalidCredentials = NewError(KindAuthentication, "invalid email or password")
	ErrUserNotFound       = NewError(KindNotFound, "user not found")

	ErrTokenMissing = NewError(KindAuthentication, "token is missing")
	ErrTokenInvalid = NewError(KindAuthentication, "token is invalid")
	ErrTokenExpired = NewError(KindAuthentication, "token has expired")

	ErrTitleRequired = NewError(KindValidation, "title is required")
	ErrTitleTooLong  = NewError(KindValidation, "title is too long")
	ErrDescTooLong   = NewError(KindValidation, "description is too long")
	ErrInvalidStatus = NewError(KindValidation, "invalid status value")
	ErrTaskNotFound  = NewError(KindNotFound, "task not found")
	ErrTaskForbidden = NewError(KindAuthorization, "you do not have permission to access this task")
)
