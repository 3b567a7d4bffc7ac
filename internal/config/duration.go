package config

import (
	"fmt"
	"strings"
	"time"
)

// Timeout parses the configured model request timeout, falling back to
// the default when the value is empty. One generous bound covers the
// whole request; expiry is fatal for that call.
func (m ModelConfig) Timeout() (time.Duration, error) {
	value := strings.TrimSpace(m.RequestTimeout)
	if value == "" {
		value = DefaultModelRequestTimeout
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse model request timeout %q: %w", value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("model request timeout %q must be positive", value)
	}
	return d, nil
}
