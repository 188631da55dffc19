package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrConfiguration    = errors.New("configuration error")
	ErrAuth             = errors.New("authentication rejected")
	ErrRateLimited      = errors.New("rate limited")
	ErrUnavailable      = errors.New("service unavailable")
	ErrBadRequest       = errors.New("bad request")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrPersistence      = errors.New("persistence error")
	ErrCancelled        = errors.New("run cancelled")
	ErrBusy             = errors.New("workflow busy")
	ErrNotFound         = errors.New("not found")
	ErrTransient        = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsRemoteFailure reports whether err carries one of the outbound-call markers.
// Remote failures are recorded per item and never abort a batch.
func IsRemoteFailure(err error) bool {
	return errors.Is(err, ErrAuth) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrUnexpectedStatus)
}

// FailureKind labels an error for history rows and user-facing summaries.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrRateLimited):
		return "rate-limit"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrBadRequest):
		return "bad-request"
	case errors.Is(err, ErrUnexpectedStatus):
		return "unexpected-status"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	case errors.Is(err, ErrBusy):
		return "busy"
	case errors.Is(err, ErrNotFound):
		return "not-found"
	default:
		return "error"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
