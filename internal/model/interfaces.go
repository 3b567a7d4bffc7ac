package model

import (
	"context"

	"github.com/harunnryd/tachi/internal/model/contract"
)

// Provider issues one non-streaming completion per call. All retry and
// repair policy lives above this layer.
type Provider interface {
	Generate(ctx context.Context, req contract.CompletionRequest) (*contract.CompletionResponse, error)
	Name() string
}
