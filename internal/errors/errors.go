package errors

import (
	"errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors maps a form field to its messages in the order they were found.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
	Fields  FieldErrors
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	fields := FieldErrors{}
	for _, d := range details {
		fields.Add(d.Field, d.Message)
	}
	return &ValidationError{
		Message: message,
		Details: details,
		Fields:  fields,
	}
}

// NewFieldValidationError builds a ValidationError from already grouped field messages.
func NewFieldValidationError(message string, fields FieldErrors) *ValidationError {
	var details []ValidationDetail
	for field, msgs := range fields {
		for _, m := range msgs {
			details = append(details, ValidationDetail{Field: field, Message: m})
		}
	}
	return &ValidationError{
		Message: message,
		Details: details,
		Fields:  fields,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// StorageError carries a message that is safe to show to the user. Cause is
// kept for logging only.
type StorageError struct {
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{
		Message: message,
		Cause:   cause,
	}
}

func IsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

type AuthErrorType string

const (
	AuthCredentialsSignin AuthErrorType = "CredentialsSignin"
	AuthUnknown           AuthErrorType = "Unknown"
)

type AuthenticationError struct {
	Type  AuthErrorType
	Cause error
}

func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication failed (%s): %v", e.Type, e.Cause)
	}
	return fmt.Sprintf("authentication failed (%s)", e.Type)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}

// UserMessage is the only text about a failed sign-in that reaches the client.
func (e *AuthenticationError) UserMessage() string {
	switch e.Type {
	case AuthCredentialsSignin:
		return "Invalid credentials."
	default:
		return "Something went wrong."
	}
}

func NewAuthenticationError(typ AuthErrorType, cause error) *AuthenticationError {
	return &AuthenticationError{
		Type:  typ,
		Cause: cause,
	}
}

func IsAuthenticationError(err error) (*AuthenticationError, bool) {
	var ae *AuthenticationError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
