package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Transport errors: the request never produced a usable response
	ErrorTypeTransport  ErrorType = "transport"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeConnection ErrorType = "connection"

	// Backend errors: a response arrived but signals failure
	ErrorTypeBackendRejection ErrorType = "backend_rejection"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeForbidden        ErrorType = "forbidden"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeConflict         ErrorType = "conflict"
	ErrorTypeRateLimit        ErrorType = "rate_limit"
	ErrorTypeServer           ErrorType = "server"

	// Shape anomalies are defaulted by the normalizer, never returned to callers
	ErrorTypeShapeMismatch ErrorType = "shape_mismatch"

	// Local errors
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeAuth       ErrorType = "auth"

	ErrorTypeUnknown ErrorType = "unknown"
)

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
	RetryAfter int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// TransportError wraps a network-level failure
func TransportError(message string, cause error) *CLIError {
	err := NewCLIError(ErrorTypeTransport, message, cause)
	err.Suggestion = "Check your connection and the api.base_url setting, then try again."
	return err
}

// ConnectionError is returned when the backend cannot be reached at all
func ConnectionError(cause error) *CLIError {
	err := NewCLIError(ErrorTypeConnection, "Could not connect to server. Make sure it's running.", cause)
	err.Suggestion = "Check the api.base_url setting in your config file."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError() *CLIError {
	err := NewCLIError(ErrorTypeTimeout, "Request timed out", nil)
	err.Suggestion = "The server is taking too long to respond. Try again in a moment."
	return err
}

// BackendRejection carries a failure the backend reported in its payload
func BackendRejection(message string, statusCode int) *CLIError {
	if message == "" {
		message = "Request rejected by server"
	}
	err := NewCLIError(ErrorTypeBackendRejection, message, nil)
	err.StatusCode = statusCode
	return err
}

// ShapeMismatch describes a payload that did not match the expected shape
func ShapeMismatch(operation string, cause error) *CLIError {
	return NewCLIError(ErrorTypeShapeMismatch, fmt.Sprintf("unexpected response shape for %s", operation), cause)
}

// AuthError creates an authentication error
func AuthError(message string) *CLIError {
	err := NewCLIError(ErrorTypeAuth, message, nil)
	err.Suggestion = "Try logging in again with 'impactboard-admin auth login'"
	return err
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError() *CLIError {
	err := NewCLIError(ErrorTypeUnauthorized, "Your session is missing or has expired", nil)
	err.Suggestion = "Run 'impactboard-admin auth login' to start a new session."
	err.StatusCode = 401
	return err
}

// ForbiddenError creates a forbidden error
func ForbiddenError() *CLIError {
	err := NewCLIError(ErrorTypeForbidden, "Access denied", nil)
	err.Suggestion = "This action needs an administrator or moderator account."
	err.StatusCode = 403
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *CLIError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewCLIError(ErrorTypeValidation, message, nil)
}

// ServerError creates a server error
func ServerError() *CLIError {
	err := NewCLIError(ErrorTypeServer, "Server error", nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *CLIError {
	err := NewCLIError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
	err.StatusCode = 404
	return err
}

// RateLimitError creates a rate limit error
func RateLimitError(retryAfter int) *CLIError {
	err := NewCLIError(ErrorTypeRateLimit,
		"Rate limit exceeded. Too many requests.",
		nil)
	err.RetryAfter = retryAfter
	err.StatusCode = 429
	err.Suggestion = fmt.Sprintf("Please wait %d seconds before trying again.", retryAfter)
	return err
}

// ConflictError creates a conflict error
func ConflictError(message string) *CLIError {
	err := NewCLIError(ErrorTypeConflict, message, nil)
	err.StatusCode = 409
	return err
}

// FromStatus maps an HTTP status without a usable body onto a CLIError.
func FromStatus(statusCode int, status string) *CLIError {
	switch {
	case statusCode == 401:
		return UnauthorizedError()
	case statusCode == 403:
		return ForbiddenError()
	case statusCode == 404:
		return NotFoundError("Resource", "requested path")
	case statusCode == 429:
		return RateLimitError(60)
	case statusCode >= 500:
		err := ServerError()
		err.StatusCode = statusCode
		return err
	default:
		if status == "" {
			status = fmt.Sprintf("%d", statusCode)
		}
		err := TransportError(fmt.Sprintf("request failed: %s", status), nil)
		err.StatusCode = statusCode
		return err
	}
}

// CategorizeError converts a standard error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	errMsg := err.Error()
	lower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(lower, "connection refused"), strings.Contains(lower, "no such host"):
		return ConnectionError(err)
	case strings.Contains(lower, "context deadline exceeded"), strings.Contains(lower, "timeout"):
		timeout := TimeoutError()
		timeout.Cause = err
		return timeout
	case strings.Contains(lower, "context canceled"):
		return NewCLIError(ErrorTypeTransport, "Request cancelled", err)
	default:
		return NewCLIError(ErrorTypeUnknown, errMsg, err)
	}
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Message)
	sb.WriteString("\n")

	if cliErr.HasSuggestion() {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	if cliErr.Type == ErrorTypeRateLimit && cliErr.RetryAfter > 0 {
		sb.WriteString(fmt.Sprintf("\nRetry in: %d seconds\n", cliErr.RetryAfter))
	}

	return sb.String()
}
