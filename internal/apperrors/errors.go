package apperrors

import (
	"errors"
	"fmt"
)

var (
	// Auth failures, all mapped to 401 at the handler boundary.
	ErrUnauthenticated  = errors.New("authorization header missing or invalid")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not active yet")
	ErrMissingSubject   = errors.New("user id not found in token")
	ErrVerification     = errors.New("token verification failed")

	ErrWebsiteNotFound = errors.New("website not found")
	ErrInternal        = errors.New("internal error")
)

// ValidationError is a malformed-input failure carrying a field-level
// message safe to echo back to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(field, format string, a ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

func NewInternal(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInternal}, a...)...)
}

func IsAuth(err error) bool {
	return errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenNotYetValid) ||
		errors.Is(err, ErrMissingSubject) ||
		errors.Is(err, ErrVerification)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrWebsiteNotFound)
}
