package prefs

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec turns structured objects into the string payload the backing store
// can hold, and back.
type Codec interface {
	Name() string
	Encode(v any) (string, error)
	// Decode fills target, which must be a non-nil pointer.
	Decode(data string, target any) error
}

// JSONCodec is the default object codec.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSONCodec) Decode(data string, target any) error {
	return json.Unmarshal([]byte(data), target)
}

// YAMLCodec stores objects as YAML documents.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (YAMLCodec) Decode(data string, target any) error {
	return yaml.Unmarshal([]byte(data), target)
}

// CodecByName returns the codec for "json" or "yaml". Empty selects JSON.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSONCodec{}, nil
	case "yaml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
