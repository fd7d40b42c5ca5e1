package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload of an event as T.
// Payloads published on the MemoryBus arrive as T or *T; anything else (a map
// read back from the event log, say) goes through a JSON round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, fmt.Errorf("nil %T payload", v)
		}
		return *v, nil
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("failed to encode %T payload: %w", input, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to decode payload as %T: %w", result, err)
	}
	return result, nil
}
