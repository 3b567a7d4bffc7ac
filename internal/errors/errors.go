package errors

import (
	"errors"
)

// Sentinel errors for different categories
var (
	// ErrInvalidDecision - decision mode is neither "chat" nor "action"
	ErrInvalidDecision = errors.New("invalid decision")

	// ErrMissingToolName - action decision without a tool name
	ErrMissingToolName = errors.New("missing tool name")

	// ErrInvalidArgsShape - action args are neither an object nor a list of objects
	ErrInvalidArgsShape = errors.New("invalid args shape")

	// ErrOversizedBatch - batched action exceeds the hard call ceiling
	ErrOversizedBatch = errors.New("oversized batch")

	// ErrMalformedOutput - model output did not contain a decodable decision object
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrRepairExhausted - both the primary decode and the one repair attempt failed
	ErrRepairExhausted = errors.New("repair exhausted")

	// ErrBackend - model backend request failed (transport, non-2xx, timeout)
	ErrBackend = errors.New("model backend error")

	// ErrToolSession - tool provider subprocess or invocation failed
	ErrToolSession = errors.New("tool session error")

	// ErrInternal - internal error
	ErrInternal = errors.New("internal error")
)
