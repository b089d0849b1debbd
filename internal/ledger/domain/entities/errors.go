package entities

import "errors"

// ValidationError is a recoverable business-rule violation. Reason is shown to the caller verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError builds a ValidationError with reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// Validation failures, in the order entries are checked.
var (
	ErrInvalidDescription = NewValidationError("invalid description")
	ErrInvalidMonth       = NewValidationError("invalid month")
	ErrInvalidYear        = NewValidationError("invalid year")
	ErrUserRequired       = NewValidationError("user required")
	ErrInvalidValue       = NewValidationError("invalid value")
	ErrEntryTypeRequired  = NewValidationError("entry type required")

	ErrEmailAlreadyRegistered = NewValidationError("email already registered")
)

// AuthErrorKind distinguishes why authentication failed.
type AuthErrorKind string

const (
	AuthNotFound      AuthErrorKind = "NOT_FOUND"
	AuthBadCredential AuthErrorKind = "BAD_CREDENTIAL"
)

// AuthenticationError is returned when credentials cannot be accepted.
type AuthenticationError struct {
	Kind   AuthErrorKind
	Reason string
}

func (e *AuthenticationError) Error() string {
	return e.Reason
}

var (
	ErrAuthUserNotFound    = &AuthenticationError{Kind: AuthNotFound, Reason: "user not found"}
	ErrAuthInvalidPassword = &AuthenticationError{Kind: AuthBadCredential, Reason: "invalid password"}
)

// Gateway lookups report missing rows with these.
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrUserNotFound  = errors.New("user not found")
)

// ErrEntryIDRequired marks a programming error: update or delete of an entry that was never saved.
// It is raised with panic and is never a ValidationError.
var ErrEntryIDRequired = errors.New("entry id required")

// ErrEntryIDNotAllowed marks a save of an entry that already has an identity.
var ErrEntryIDNotAllowed = errors.New("entry id must be empty on save")
