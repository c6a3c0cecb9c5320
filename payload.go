package hemit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StatusSuccess is the only status the fixture reports.
const StatusSuccess = "success"

const messageFormat = "Caffeine handler executed successfully! Instance: %s (Method: %s)"

// Payload is the JSON body of the fixture response.
// Field order is the order on the wire.
type Payload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewPayload builds the body for cfg.
func NewPayload(cfg Config) Payload {
	return Payload{
		Status:  StatusSuccess,
		Message: fmt.Sprintf(messageFormat, cfg.Instance, cfg.Method),
	}
}

// Encode serializes p with two-space indentation and without HTML escaping.
// The result carries no trailing newline.
func (p Payload) Encode() ([]byte, error) {
	var b bytes.Buffer

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}
