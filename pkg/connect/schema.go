// Package connect defines the pipeline's internal typed data representation.
// Decoded wire records are translated into a (Schema, value) pair so that
// downstream stages work with one type system regardless of the original
// wire format.
package connect

// Type identifies the kind of value a Schema describes.
type Type int

const (
	TypeBoolean Type = iota + 1
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeBytes
	TypeStruct
	TypeArray
	TypeMap
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeString:
		return "string"
	case TypeBytes:
		return "bytes"
	case TypeStruct:
		return "struct"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	}
	return "unknown"
}

// Field is a named member of a struct schema.
type Field struct {
	Name   string
	Schema *Schema
}

// Schema describes the structure of a translated value.
// Schemas are immutable after construction; the same wire schema always
// translates to a structurally identical Schema.
type Schema struct {
	// Type is the kind of value this schema describes.
	Type Type
	// Name is the full name of the originating named type (record, enum,
	// fixed). Empty for anonymous and primitive schemas.
	Name string
	// Optional marks values that may be nil.
	Optional bool
	// Fields lists struct members, in declaration order. Only set for TypeStruct.
	Fields []Field
	// Items describes array elements. Only set for TypeArray.
	Items *Schema
	// Values describes map values (keys are always strings). Only set for TypeMap.
	Values *Schema
}

// Field returns the struct field with the given name.
func (s *Schema) Field(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Struct is a translated record value: a binding of field names to values.
type Struct map[string]any
