package errors

import (
	"context"
	"errors"
	"fmt"
)

// Category returns the taxonomy name for an error, used when a loop
// fault is flattened into a user-visible diagnostic string.
func Category(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, context.Canceled):
		return "Canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "DeadlineExceeded"
	case errors.Is(err, ErrInvalidDecision):
		return "ErrInvalidDecision"
	case errors.Is(err, ErrMissingToolName):
		return "ErrMissingToolName"
	case errors.Is(err, ErrInvalidArgsShape):
		return "ErrInvalidArgsShape"
	case errors.Is(err, ErrOversizedBatch):
		return "ErrOversizedBatch"
	case errors.Is(err, ErrRepairExhausted):
		return "ErrRepairExhausted"
	case errors.Is(err, ErrMalformedOutput):
		return "ErrMalformedOutput"
	case errors.Is(err, ErrBackend):
		return "ErrBackend"
	case errors.Is(err, ErrToolSession):
		return "ErrToolSession"
	case errors.Is(err, ErrInternal):
		return "ErrInternal"
	default:
		return "Unknown"
	}
}

// IsProtocolViolation reports whether the error is a fatal decision
// protocol violation rather than a transport or parse fault.
func IsProtocolViolation(err error) bool {
	return errors.Is(err, ErrInvalidDecision) ||
		errors.Is(err, ErrMissingToolName) ||
		errors.Is(err, ErrInvalidArgsShape) ||
		errors.Is(err, ErrOversizedBatch)
}

// Wrap wraps an error with context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Backend wraps an error as a model backend fault.
func Backend(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%v: %w", err, ErrBackend)
}

// ToolSession wraps an error as a tool session fault.
func ToolSession(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%v: %w", err, ErrToolSession)
}
