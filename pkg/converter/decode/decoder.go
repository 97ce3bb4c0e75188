// Package decode turns raw Avro binary payloads into generic Go values.
package decode

import (
	"errors"
	"fmt"

	hambavro "github.com/hamba/avro/v2"
)

// ErrPayloadDecode is returned when a payload does not parse against its
// resolved schema. Decoding is all-or-nothing; the underlying codec
// diagnostic is preserved in the error chain.
var ErrPayloadDecode = errors.New("payload decode failed")

// Decoder decodes Avro binary data against a resolved schema.
type Decoder interface {
	// Decode deserializes the payload into a generic value tree governed by
	// the schema: records become map[string]any, arrays []any, and so on.
	Decode(schema hambavro.Schema, payload []byte) (any, error)
}

type hambaDecoder struct {
	api hambavro.API
}

// NewHambaDecoder creates a generic Avro decoder using the hamba/avro library.
func NewHambaDecoder() Decoder {
	return &hambaDecoder{api: hambavro.DefaultConfig}
}

func (d *hambaDecoder) Decode(schema hambavro.Schema, payload []byte) (any, error) {
	var value any
	if err := d.api.Unmarshal(schema, payload, &value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPayloadDecode, err)
	}
	return value, nil
}
