package normalization

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"safeCast/internal/modules/coercion/domain"
)

var (
	// ErrEmptyPayload is returned when there is no document to decode.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrMalformedPayload wraps JSON and YAML syntax errors.
	ErrMalformedPayload = errors.New("malformed payload")
)

// DecodeJSON decodes a single JSON document into a tagged value. Numbers keep
// their literal form so 5 is an integer and 5.0 a float.
func DecodeJSON(data []byte) (domain.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Value{}, ErrEmptyPayload
	}
	var raw any
	if err := DecodeJSONInto(data, &raw); err != nil {
		return domain.Value{}, err
	}
	return FromAny(raw), nil
}

// DecodeJSONInto decodes data into out with json.Number numbers and rejects
// trailing documents.
func DecodeJSONInto(data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyPayload
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after document", ErrMalformedPayload)
	}
	return nil
}

// DecodeYAML decodes a single YAML document into a tagged value.
func DecodeYAML(data []byte) (domain.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Value{}, ErrEmptyPayload
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Value{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return FromAny(raw), nil
}
