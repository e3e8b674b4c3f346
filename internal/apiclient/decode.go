package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeArray
	ShapeDataProducts
	ShapeData
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeDataProducts:
		return "data.products"
	case ShapeData:
		return "data"
	default:
		return "unrecognized"
	}
}

// Decoded is a response body classified by envelope. Items holds the raw
// JSON array for every shape except ShapeUnrecognized.
type Decoded struct {
	Shape Shape
	Items json.RawMessage
	Raw   json.RawMessage
}

// Decode accepts a bare array, {"data":{"products":[...]}} or {"data":[...]},
// checked in that order. Keys match exactly. Anything else that is valid JSON comes back as
// ShapeUnrecognized.
func Decode(body []byte) (Decoded, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Decoded{}, fmt.Errorf("decoding response: %w", err)
	}

	decoded := Decoded{Shape: ShapeUnrecognized, Raw: raw}

	if isArray(raw) {
		decoded.Shape = ShapeArray
		decoded.Items = raw
		return decoded, nil
	}

	data, ok := member(raw, "data")
	if !ok {
		return decoded, nil
	}

	if products, ok := member(data, "products"); ok && isArray(products) {
		decoded.Shape = ShapeDataProducts
		decoded.Items = products
		return decoded, nil
	}

	if isArray(data) {
		decoded.Shape = ShapeData
		decoded.Items = data
	}

	return decoded, nil
}

// member looks up key in a JSON object. encoding/json folds case when it
// matches struct fields, so the object is read into a map instead.
func member(raw json.RawMessage, key string) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
