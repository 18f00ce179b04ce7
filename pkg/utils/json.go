package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// UnmarshalJson converts a loosely typed message payload into T. Payloads
// that already hold T are returned as is; anything else, typically a
// map[string]any produced by a json reader, is re-encoded and decoded.
func UnmarshalJson[T any](v any) (T, error) {
	switch payload := v.(type) {
	case T:
		return payload, nil
	case *T:
		if payload != nil {
			return *payload, nil
		}
	}
	data, err := jsoniter.Marshal(v)
	if err != nil {
		return *new(T), errors.WithMessage(err, "marshal json")
	}
	var result T
	if err := jsoniter.Unmarshal(data, &result); err != nil {
		return *new(T), errors.WithMessage(err, "unmarshal json")
	}
	return result, nil
}
