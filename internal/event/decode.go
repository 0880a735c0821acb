package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload extracts a typed payload from an event. In-process events
// carry the struct directly, so the type assertion is the hot path; payloads
// that arrived through a serialized boundary fall back to a JSON round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if typed, ok := input.(T); ok {
		return typed, nil
	}

	var out T
	raw, err := json.Marshal(input)
	if err != nil {
		return out, fmt.Errorf("marshal payload: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("unmarshal payload: %w", err)
	}
	return out, nil
}
