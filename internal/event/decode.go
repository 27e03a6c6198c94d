package event

import "encoding/json"

// DecodePayload returns payload as T. Payloads published in-process already
// have their concrete type; ones that crossed a serialization boundary arrive
// as raw JSON or a generic map and are re-decoded.
func DecodePayload[T any](payload any) (T, error) {
	var out T
	switch p := payload.(type) {
	case T:
		return p, nil
	case json.RawMessage:
		return out, json.Unmarshal(p, &out)
	case []byte:
		return out, json.Unmarshal(p, &out)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}
