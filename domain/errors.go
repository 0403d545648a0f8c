package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"

	// Form validation kinds. All of them are recoverable and scoped to one field.
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeTooLong       ErrorCode = "TOO_LONG"
	ErrCodeBadFormat     ErrorCode = "BAD_FORMAT"
	ErrCodePastDate      ErrorCode = "PAST_DATE"
	ErrCodeBadURL        ErrorCode = "BAD_URL"

	ErrCodePersistence ErrorCode = "PERSISTENCE_UNAVAILABLE"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches domain errors by code and message so wrapped copies of the
// sentinels below still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "task not found")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
	ErrInvalidDate        = NewError(ErrCodeInvalid, "invalid date")
	ErrFormNotOpen        = NewError(ErrCodeConflict, "no task form is open")
	ErrDeleteNotConfirmed = NewError(ErrCodeConflict, "delete requires confirmation")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// Field names a user-editable input of the task form.
type Field string

const (
	FieldTitle              Field = "title"
	FieldDate               Field = "date"
	FieldCompletionTimeGoal Field = "completionTimeGoal"
	FieldRepeatDays         Field = "repeatDays"
	FieldMonthlyPattern     Field = "monthlyPattern"
	FieldCategoryTags       Field = "categoryTags"
	FieldLocation           Field = "location"
	FieldURL                Field = "url"
	FieldDescription        Field = "description"
	FieldPreDeadlineAlerts  Field = "preDeadlineAlerts"
	FieldDefaultSnooze      Field = "defaultSnoozeMinutes"
)

// FieldError is one problem with one form input.
type FieldError struct {
	Field   Field     `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FieldErrors collects every failing field of a draft, in form order.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "no field errors"
	}
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return "invalid task: " + strings.Join(parts, "; ")
}

// Has reports whether field failed with the given code.
func (fe FieldErrors) Has(field Field, code ErrorCode) bool {
	for _, e := range fe {
		if e.Field == field && e.Code == code {
			return true
		}
	}
	return false
}

// For returns the errors reported against field.
func (fe FieldErrors) For(field Field) FieldErrors {
	var out FieldErrors
	for _, e := range fe {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// Without returns a copy with every error for field removed.
func (fe FieldErrors) Without(field Field) FieldErrors {
	out := make(FieldErrors, 0, len(fe))
	for _, e := range fe {
		if e.Field != field {
			out = append(out, e)
		}
	}
	return out
}
