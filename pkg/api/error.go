package api

import (
	"strings"

	clierrors "github.com/impactboard/admin-cli/pkg/errors"
	"github.com/impactboard/admin-cli/pkg/util"
)

// failureMessage reads the reason out of an error payload: "message", then
// "error" as a string, then "error.message".
func failureMessage(obj map[string]any) string {
	if obj == nil {
		return ""
	}
	if msg := util.FirstString(obj, "message"); msg != "" {
		return msg
	}
	switch e := obj["error"].(type) {
	case string:
		return strings.TrimSpace(e)
	case map[string]any:
		return util.FirstString(e, "message")
	}
	return ""
}

// IsUnauthorized checks if a failed result was due to missing or invalid authentication
func IsUnauthorized[T any](res Result[T]) bool {
	return res.Err != nil && (res.Err.Type == clierrors.ErrorTypeUnauthorized || res.Err.StatusCode == 401)
}

// IsForbidden checks if a failed result was due to insufficient permissions
func IsForbidden[T any](res Result[T]) bool {
	return res.Err != nil && (res.Err.Type == clierrors.ErrorTypeForbidden || res.Err.StatusCode == 403)
}

// IsNotFound checks if a failed result was due to a missing resource
func IsNotFound[T any](res Result[T]) bool {
	return res.Err != nil && (res.Err.Type == clierrors.ErrorTypeNotFound || res.Err.StatusCode == 404)
}

// IsServerError checks if a failed result was due to a server error (5xx)
func IsServerError[T any](res Result[T]) bool {
	return res.Err != nil && res.Err.StatusCode >= 500
}

// MessageOr returns the result's message, or fallback when it has none.
func MessageOr[T any](res Result[T], fallback string) string {
	if res.Message != "" {
		return res.Message
	}
	return fallback
}

// AsError turns a failed result into an error for the command layer. A
// rejection without a backend message reads as fallback. Successful results
// give nil.
func AsError[T any](res Result[T], fallback string) error {
	if res.Success {
		return nil
	}
	if res.Err != nil && res.Err.Type != clierrors.ErrorTypeBackendRejection {
		return res.Err
	}
	status := 0
	if res.Err != nil {
		status = res.Err.StatusCode
	}
	return clierrors.BackendRejection(MessageOr(res, fallback), status)
}
