package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeCompleted serialises a completed-set as a JSON array of ids.
// A nil slice encodes as [] so the stored value is always an array.
func EncodeCompleted(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to encode completed set: %w", err)
	}
	return string(data), nil
}

// DecodeCompleted parses a stored completed-set. Anything other than a JSON
// array of strings, including null, yields an error wrapping ErrCorruptState.
func DecodeCompleted(raw string) ([]string, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: value is not a JSON array", ErrCorruptState)
	}

	var ids []string
	if err := json.Unmarshal(trimmed, &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return ids, nil
}
