package inventory

import (
	"encoding/json"
	"fmt"
)

// payload is the serialized form of a dataset. The version field allows the
// item shape to evolve independently of the encryption blob format.
type payload struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

const payloadVersion = 1

// Encode serializes a dataset into the byte payload handed to the sealer.
func Encode(d Dataset) ([]byte, error) {
	p := payload{Version: payloadVersion, Items: d}
	if p.Items == nil {
		p.Items = []Item{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	return data, nil
}

// Decode reverses Encode. An unknown payload version is rejected rather
// than guessed at.
func Decode(data []byte) (Dataset, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if p.Version != payloadVersion {
		return nil, fmt.Errorf("unsupported dataset version %d", p.Version)
	}
	return Dataset(p.Items), nil
}
