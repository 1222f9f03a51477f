package domain

import "net/http"

// ErrorCode is the closed taxonomy of reflection failures. Every failure
// the service reports maps onto exactly one of these values.
type ErrorCode string

const (
	ErrValidation    ErrorCode = "validation"
	ErrContentPolicy ErrorCode = "content_policy"
	ErrTimeout       ErrorCode = "timeout"
	ErrAPIError      ErrorCode = "api_error"
	ErrRateLimit     ErrorCode = "rate_limit"
	ErrInternal      ErrorCode = "internal_error"
)

// ReflectionError is the structured error surfaced to clients. Status is
// the HTTP status to respond with; RetryAfter (seconds) is a back-off hint
// and zero means no hint.
type ReflectionError struct {
	Code       ErrorCode
	Message    string
	Status     int
	RetryAfter int
}

func (e *ReflectionError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewValidationError builds a 400 validation error with the given message.
func NewValidationError(msg string) *ReflectionError {
	return &ReflectionError{
		Code:    ErrValidation,
		Message: msg,
		Status:  http.StatusBadRequest,
	}
}

// NewRateLimitError builds a 429 with the seconds a client should wait.
func NewRateLimitError(retryAfter int) *ReflectionError {
	return &ReflectionError{
		Code:       ErrRateLimit,
		Message:    "Too many requests. Please slow down and try again shortly.",
		Status:     http.StatusTooManyRequests,
		RetryAfter: retryAfter,
	}
}
