// Package apperr carries the application error types and the echo error
// handler that maps them onto HTTP responses.
package apperr

// ValidationError marks bad request input. The global handler turns it
// into a 400 regardless of how deep it was wrapped.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidation builds a ValidationError from a bare message.
func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// NewValidationWrap keeps the cause available for errors.As chains.
func NewValidationWrap(msg string, cause error) *ValidationError {
	return &ValidationError{Message: msg, Err: cause}
}
