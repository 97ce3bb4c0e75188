package converter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	hambavro "github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sokol111/ecommerce-record-converter/pkg/connect"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/config"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/decode"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/schema"
	"github.com/Sokol111/ecommerce-record-converter/pkg/converter/translate"
)

const orderSchemaJSON = `{
	"type": "record",
	"name": "Order",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "qty", "type": "int"}
	]
}`

type order struct {
	ID  string `avro:"id"`
	Qty int    `avro:"qty"`
}

func newTestConverter(t *testing.T) Converter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.avsc")
	require.NoError(t, os.WriteFile(path, []byte(orderSchemaJSON), 0o600))

	table, err := schema.NewTable(config.Config{Sources: "orders=" + path}, nil, zap.NewNop())
	require.NoError(t, err)
	return New(table, decode.NewHambaDecoder(), translate.NewAvroTranslator(), zap.NewNop())
}

func encodeOrder(t *testing.T, o order) []byte {
	t.Helper()
	payload, err := hambavro.Marshal(hambavro.MustParse(orderSchemaJSON), o)
	require.NoError(t, err)
	return payload
}

func TestConvert_Record(t *testing.T) {
	// Arrange
	conv := newTestConverter(t)
	payload := encodeOrder(t, order{ID: "A1", Qty: 3})

	// Act
	record, err := conv.Convert(context.Background(), "orders-topic", "orders", "100", payload)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "orders-topic", record.Topic)
	assert.False(t, record.Tombstone())

	assert.Equal(t, connect.Struct{
		KeyFieldIdentifier: "orders",
		KeyFieldSourceID:   "100",
	}, record.Key)
	assert.Same(t, KeySchema(), record.KeySchema)

	require.NotNil(t, record.ValueSchema)
	assert.Equal(t, connect.TypeStruct, record.ValueSchema.Type)
	assert.Equal(t, "Order", record.ValueSchema.Name)
	assert.Equal(t, connect.Struct{"id": "A1", "qty": int32(3)}, record.Value)
}

func TestConvert_Tombstone(t *testing.T) {
	// Arrange
	conv := newTestConverter(t)

	// Act: source is not configured, which must not matter for tombstones.
	record, err := conv.Convert(context.Background(), "orders-topic", "unconfigured", "100", nil)

	// Assert
	require.NoError(t, err)
	assert.True(t, record.Tombstone())
	assert.Equal(t, "orders-topic", record.Topic)
	assert.Nil(t, record.Key)
	assert.Nil(t, record.KeySchema)
	assert.Nil(t, record.Value)
	assert.Nil(t, record.ValueSchema)
}

func TestConvert_UnknownSource(t *testing.T) {
	// Arrange
	conv := newTestConverter(t)
	payload := encodeOrder(t, order{ID: "A1", Qty: 3})

	// Act
	_, err := conv.Convert(context.Background(), "orders-topic", "customers", "100", payload)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnknownSource)
}

func TestConvert_CorruptPayload(t *testing.T) {
	// Arrange
	conv := newTestConverter(t)
	payload := encodeOrder(t, order{ID: "A1", Qty: 3})
	payload[0] = 0x01

	// Act
	_, err := conv.Convert(context.Background(), "orders-topic", "orders", "100", payload)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, decode.ErrPayloadDecode)
}

func TestBuildKey_Deterministic(t *testing.T) {
	// Act
	firstSchema, firstKey, err := BuildKey("orders", "100")
	require.NoError(t, err)
	secondSchema, secondKey, err := BuildKey("orders", "100")
	require.NoError(t, err)
	_, otherKey, err := BuildKey("orders", "200")
	require.NoError(t, err)

	// Assert
	assert.Same(t, firstSchema, secondSchema)
	assert.Equal(t, firstKey, secondKey)
	assert.NotEqual(t, firstKey, otherKey)
	assert.Equal(t, "200", otherKey[KeyFieldSourceID])
}

func TestBuildKey_EmptySourceID(t *testing.T) {
	// Act
	_, _, err := BuildKey("", "100")

	// Assert
	require.Error(t, err)
}
