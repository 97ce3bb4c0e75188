// Package converter assembles output records from raw source payloads: it
// resolves the schema for the payload's source identifier, decodes the
// bytes, translates them into the internal connect representation, and pairs
// the result with a synthesized key record.
package converter

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Sokol111/ecommerce-record-converter/pkg/connect"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/decode"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/schema"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/translate"
)

// OutputRecord is the result of one conversion, ready for downstream
// publication. Ownership passes to the caller on return.
type OutputRecord struct {
	Topic       string
	Key         connect.Struct
	KeySchema   *connect.Schema
	Value       any
	ValueSchema *connect.Schema
}

// Tombstone reports whether the record marks a deletion (nil payload input).
func (r *OutputRecord) Tombstone() bool {
	return r.Key == nil && r.KeySchema == nil && r.Value == nil && r.ValueSchema == nil
}

// Converter converts tagged byte payloads into output records. It is safe
// for concurrent use.
type Converter interface {
	// Convert resolves the schema for sourceID, decodes and translates the
	// payload, and assembles the output record. A nil payload is a
	// tombstone: it short-circuits before any schema lookup and yields a
	// record carrying only the topic.
	//
	// Failures are fail-fast and never retried here: unconfigured sources
	// fail with schema.ErrUnknownSource, malformed payloads with
	// decode.ErrPayloadDecode, and untranslatable schemas with
	// translate.ErrSchemaTranslation. The caller decides whether to drop,
	// dead-letter, or halt.
	Convert(ctx context.Context, topic, sourceID, externalID string, payload []byte) (*OutputRecord, error)
}

type recordConverter struct {
	table      *schema.Table
	decoder    decode.Decoder
	translator translate.Translator
	logger     *zap.Logger
	tracer     trace.Tracer
}

// New creates a ready-to-use Converter.
func New(table *schema.Table, decoder decode.Decoder, translator translate.Translator, logger *zap.Logger) Converter {
	return &recordConverter{
		table:      table,
		decoder:    decoder,
		translator: translator,
		logger:     logger,
		tracer:     otel.Tracer("record-converter"),
	}
}

func (c *recordConverter) Convert(ctx context.Context, topic, sourceID, externalID string, payload []byte) (*OutputRecord, error) {
	_, span := c.tracer.Start(ctx, "converter.convert",
		trace.WithAttributes(
			attribute.String("messaging.destination", topic),
			attribute.String("converter.source", sourceID),
		))
	defer span.End()

	if payload == nil {
		c.logger.Debug("tombstone payload",
			zap.String("topic", topic),
			zap.String("source", sourceID),
		)
		return &OutputRecord{Topic: topic}, nil
	}

	writerSchema, err := c.table.Lookup(sourceID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	decoded, err := c.decoder.Decode(writerSchema, payload)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	valueSchema, value, err := c.translator.Translate(writerSchema, decoded)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	keySchema, key, err := BuildKey(sourceID, externalID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &OutputRecord{
		Topic:       topic,
		Key:         key,
		KeySchema:   keySchema,
		Value:       value,
		ValueSchema: valueSchema,
	}, nil
}
