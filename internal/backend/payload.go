package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is the raw JSON returned by the backend root endpoint.
// No schema is assumed; use Decode when a shape is known.
type Payload []byte

// Parse checks that b is a single JSON value and returns it as a Payload.
func Parse(b []byte) (Payload, error) {
	b = bytes.TrimSpace(b)
	if !json.Valid(b) {
		return nil, fmt.Errorf("%w: body is not a JSON value", ErrInvalidPayload)
	}
	p := make(Payload, len(b))
	copy(p, b)
	return p, nil
}

// Indent returns the payload as JSON text indented by two spaces.
func (p Payload) Indent() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, p, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return buf.String(), nil
}

// Decode unmarshals p into a value of type T.
func Decode[T any](p Payload) (T, error) {
	var v T
	if err := json.Unmarshal(p, &v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return v, nil
}
