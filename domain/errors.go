package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures crossing the service boundary.
type ErrorKind string

const (
	KindStorage    ErrorKind = "STORAGE"
	KindBackend    ErrorKind = "BACKEND"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindNetwork    ErrorKind = "NETWORK"
	KindParse      ErrorKind = "PARSE"
	KindValidation ErrorKind = "VALIDATION"
)

// AppError carries a kind, a human-readable message and the underlying cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another *AppError by kind, so errors.Is(err, &AppError{Kind: KindNetwork}) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func NewStorageError(op string, cause error) *AppError {
	return &AppError{Kind: KindStorage, Message: op, Cause: cause}
}

func NewBackendError(op string, cause error) *AppError {
	return &AppError{Kind: KindBackend, Message: op, Cause: cause}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewNetworkError(message string, cause error) *AppError {
	return &AppError{Kind: KindNetwork, Message: message, Cause: cause}
}

func NewParseError(message string, cause error) *AppError {
	return &AppError{Kind: KindParse, Message: message, Cause: cause}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// KindOf returns the kind of the first AppError in err's chain, or "" when there is none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// UserMessage renders err as a single message fit for a client. Raw cause text is never included.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrFoodItemNotFound):
		return ErrFoodItemNotFound.Error()
	case errors.Is(err, ErrRecipeAPIKeyMissing):
		return "Recipe search is not configured"
	case errors.Is(err, ErrImageUploadOff):
		return "Photo upload is not configured"
	case errors.Is(err, ErrTokenNotFound):
		return "Missing API token"
	case errors.Is(err, ErrTokenExpired):
		return "API token has expired"
	case errors.Is(err, ErrTokenInvalid):
		return "API token is invalid"
	case errors.Is(err, ErrInvalidImageFormat):
		return "Photo must be a JPEG, PNG or WebP image"
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return MessageFailedProcessRequest
	}

	switch appErr.Kind {
	case KindValidation:
		return appErr.Message
	case KindNotFound:
		return appErr.Message
	case KindNetwork:
		return "Network error, please try again"
	case KindParse:
		return "Received an unexpected response, please try again later"
	case KindStorage:
		return "Failed to access saved items, please try again"
	case KindBackend:
		return "Reminders are unavailable right now"
	default:
		return MessageFailedProcessRequest
	}
}
