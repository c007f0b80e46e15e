package domain

import "errors"

// Error kinds. Every domain error unwraps to exactly one of these so the
// transport layer can map it without knowing the concrete error.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Error is a typed domain failure: a kind plus a caller-safe message.
type Error struct {
	Kind    error
	Message string
}

// NewError builds an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Validation wraps a schema validation message as a BadRequest error.
func Validation(message string) *Error {
	return NewError(ErrBadRequest, message)
}

var (
	ErrUserNotFound       = NewError(ErrNotFound, "user not found")
	ErrRoleNotFound       = NewError(ErrNotFound, "role not found")
	ErrPermissionNotFound = NewError(ErrNotFound, "permission not found")

	ErrUserExists         = NewError(ErrConflict, "user already exists")
	ErrRoleExists         = NewError(ErrConflict, "role already exists")
	ErrPermissionExists   = NewError(ErrConflict, "permission already exists")
	ErrRoleHasPermissions = NewError(ErrConflict, "role is associated with permissions")
	ErrPermissionInUse    = NewError(ErrConflict, "permission is associated with roles")
	ErrResetTokenExists   = NewError(ErrConflict, "reset token already exists")

	ErrIncorrectPassword   = NewError(ErrBadRequest, "incorrect password")
	ErrPasswordMismatch    = NewError(ErrBadRequest, "new password and confirm password are different")
	ErrTokenMissingSubject = NewError(ErrBadRequest, "token payload is missing the user id")

	ErrInvalidToken  = NewError(ErrUnauthorized, "invalid token")
	ErrTokenExpired  = NewError(ErrUnauthorized, "token was expired")
	ErrTokenRevoked  = NewError(ErrUnauthorized, "token was revoked")
	ErrUnknownCaller = NewError(ErrUnauthorized, "caller no longer exists")

	ErrPermissionDenied = NewError(ErrForbidden, "permission denied")
)

// ErrMissingIdentity means a protected operation was dispatched without an
// authenticated caller, i.e. the route is missing its Auth middleware.
var ErrMissingIdentity = errors.New("authorization requires an authenticated identity")
