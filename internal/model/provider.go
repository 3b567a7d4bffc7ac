package model

import (
	"fmt"

	"github.com/harunnryd/tachi/internal/config"
	"github.com/harunnryd/tachi/internal/model/providers/ollama"
	"github.com/harunnryd/tachi/internal/model/providers/openai"
)

// NewProvider builds the configured backend client. The model identity
// is threaded in explicitly so concurrent runs can use different
// backends; there is no process-wide model global.
func NewProvider(cfg config.ModelConfig) (Provider, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "", "ollama":
		return ollama.New(cfg.BaseURL, timeout), nil
	case "openai":
		return openai.New(cfg.APIKey, cfg.BaseURL, timeout), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
