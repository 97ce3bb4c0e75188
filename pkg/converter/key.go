package converter

import (
	"fmt"

	"github.com/Sokol111/ecommerce-record-converter/pkg/connect"
)

// Key record field names.
const (
	KeyFieldIdentifier = "identifier"
	KeyFieldSourceID   = "sourceId"
)

// keySchema is a structural constant: it never varies across calls and is
// independent of any payload schema.
var keySchema = &connect.Schema{
	Type: connect.TypeStruct,
	Name: "SourceRecordKey",
	Fields: []connect.Field{
		{Name: KeyFieldIdentifier, Schema: &connect.Schema{Type: connect.TypeString}},
		{Name: KeyFieldSourceID, Schema: &connect.Schema{Type: connect.TypeString}},
	},
}

// KeySchema returns the fixed two-field key schema shared by all output records.
func KeySchema() *connect.Schema {
	return keySchema
}

// BuildKey synthesizes the key record for a converted payload. It is a pure
// function: both inputs are embedded verbatim, and the external identifier
// may be any string, including a non-numeric primary key.
func BuildKey(sourceID, externalID string) (*connect.Schema, connect.Struct, error) {
	if sourceID == "" {
		return nil, nil, fmt.Errorf("source identifier cannot be empty")
	}
	key := connect.Struct{
		KeyFieldIdentifier: sourceID,
		KeyFieldSourceID:   externalID,
	}
	return keySchema, key, nil
}
