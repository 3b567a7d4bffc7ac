package decision

import (
	"encoding/json"
	"fmt"
	"strings"

	errs "github.com/harunnryd/tachi/internal/errors"
)

// ParseFirst decodes the first complete JSON value from the prefix of
// the model output and unmarshals it into a Payload. Trailing content
// after the value is ignored; models routinely append stray prose after
// the object. Leading prose, malformed syntax, or a truncated value is
// a parse failure. The value must be a JSON object.
func ParseFirst(text string) (*Payload, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("empty model output: %w", errs.ErrMalformedOutput)
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	var first json.RawMessage
	if err := dec.Decode(&first); err != nil {
		return nil, fmt.Errorf("decode first JSON value: %v: %w", err, errs.ErrMalformedOutput)
	}

	if first[0] != '{' {
		return nil, fmt.Errorf("first JSON value is not an object: %w", errs.ErrMalformedOutput)
	}

	var payload Payload
	if err := json.Unmarshal(first, &payload); err != nil {
		return nil, fmt.Errorf("decode decision object: %v: %w", err, errs.ErrMalformedOutput)
	}
	return &payload, nil
}
