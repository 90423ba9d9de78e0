package bgg

import (
	"fmt"
	"time"
)

// AuthError represents an authentication problem (missing or rejected
// credentials). It never aborts client construction; it only disables
// access to private collection fields.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// NotFoundError is a semantic error: the service confirmed the requested
// item or user does not exist. It is never retried.
type NotFoundError struct {
	Message string
	Cause   error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// NetworkError represents a transient network or HTTP failure. It is
// retried up to the policy's attempt budget.
type NetworkError struct {
	Message    string
	Cause      error
	StatusCode int
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// RateLimitError represents an HTTP 429 from the service.
type RateLimitError struct {
	Message    string
	Cause      error
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RateLimitError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response body that failed to parse as the expected
// format. A malformed body is often a transient edge artifact, so it counts
// against the retry budget like a network failure.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ConnExhaustedError is raised after the retry budget is spent on transient
// failures. It wraps the last observed cause.
type ConnExhaustedError struct {
	Message  string
	Cause    error
	Attempts int
}

func (e *ConnExhaustedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ConnExhaustedError) Unwrap() error {
	return e.Cause
}

func newAuthError(message string, cause error) *AuthError {
	return &AuthError{Message: message, Cause: cause}
}

func newNotFoundError(message string) *NotFoundError {
	if message == "" {
		message = "item not found"
	}
	return &NotFoundError{Message: message}
}

func newNetworkError(message string, statusCode int, cause error) *NetworkError {
	return &NetworkError{Message: message, StatusCode: statusCode, Cause: cause}
}

func newRateLimitError(message string, retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{Message: message, RetryAfter: retryAfter}
}

func newParseError(message string, cause error) *ParseError {
	return &ParseError{Message: message, Cause: cause}
}

func newConnExhaustedError(attempts int, cause error) *ConnExhaustedError {
	return &ConnExhaustedError{
		Message:  fmt.Sprintf("giving up after %d attempts", attempts),
		Cause:    cause,
		Attempts: attempts,
	}
}
