package domain

import "fmt"

// ValidationError marks malformed user input. Its message is shown to the
// user verbatim and is never treated as a system fault.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a referenced entity that does not exist in the store.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %s not found", e.Entity, e.Key) }

// ExternalServiceError wraps a failure talking to Telegram, the media store
// or the database. The user gets a generic apology; the detail goes to logs.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *ExternalServiceError) Unwrap() error { return e.Err }
