// Package translate converts decoded Avro values into the pipeline's
// internal connect representation.
package translate

import (
	"errors"
	"fmt"
	"reflect"

	hambavro "github.com/hamba/avro/v2"

	"github.com/Sokol111/ecommerce-record-converter/pkg/connect"
)

// ErrSchemaTranslation is returned when a wire schema contains a construct
// with no internal representation. Such a schema is permanently incompatible
// with the pipeline, so this is a configuration-class failure even though it
// is detected at first translation.
var ErrSchemaTranslation = errors.New("schema translation failed")

// Translator maps a decoded Avro value and its schema into the internal
// connect schema/value pair.
type Translator interface {
	// Translate performs a structural, type-preserving mapping of the
	// decoded value. The same wire schema always yields a structurally
	// identical connect schema.
	Translate(schema hambavro.Schema, value any) (*connect.Schema, any, error)
}

type avroTranslator struct{}

// NewAvroTranslator creates a Translator for Avro wire schemas.
func NewAvroTranslator() Translator {
	return &avroTranslator{}
}

func (t *avroTranslator) Translate(schema hambavro.Schema, value any) (*connect.Schema, any, error) {
	translated, err := translateSchema(schema, map[string]bool{})
	if err != nil {
		return nil, nil, err
	}

	out, err := translateValue(schema, translated, value)
	if err != nil {
		return nil, nil, err
	}
	return translated, out, nil
}

// translateSchema maps the Avro type universe onto connect types. The
// inProgress set holds named schemas currently being expanded, to reject
// self-referential records instead of recursing forever.
func translateSchema(s hambavro.Schema, inProgress map[string]bool) (*connect.Schema, error) {
	switch s.Type() {
	case hambavro.Boolean:
		return &connect.Schema{Type: connect.TypeBoolean}, nil
	case hambavro.Int:
		return &connect.Schema{Type: connect.TypeInt32}, nil
	case hambavro.Long:
		return &connect.Schema{Type: connect.TypeInt64}, nil
	case hambavro.Float:
		return &connect.Schema{Type: connect.TypeFloat32}, nil
	case hambavro.Double:
		return &connect.Schema{Type: connect.TypeFloat64}, nil
	case hambavro.String:
		return &connect.Schema{Type: connect.TypeString}, nil
	case hambavro.Bytes:
		return &connect.Schema{Type: connect.TypeBytes}, nil

	case hambavro.Record:
		record := s.(*hambavro.RecordSchema)
		name := record.FullName()
		if inProgress[name] {
			return nil, fmt.Errorf("%w: recursive record %s has no internal representation", ErrSchemaTranslation, name)
		}
		inProgress[name] = true
		defer delete(inProgress, name)

		fields := make([]connect.Field, 0, len(record.Fields()))
		for _, f := range record.Fields() {
			fieldSchema, err := translateSchema(f.Type(), inProgress)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name(), err)
			}
			fields = append(fields, connect.Field{Name: f.Name(), Schema: fieldSchema})
		}
		return &connect.Schema{Type: connect.TypeStruct, Name: name, Fields: fields}, nil

	case hambavro.Array:
		items, err := translateSchema(s.(*hambavro.ArraySchema).Items(), inProgress)
		if err != nil {
			return nil, err
		}
		return &connect.Schema{Type: connect.TypeArray, Items: items}, nil

	case hambavro.Map:
		values, err := translateSchema(s.(*hambavro.MapSchema).Values(), inProgress)
		if err != nil {
			return nil, err
		}
		return &connect.Schema{Type: connect.TypeMap, Values: values}, nil

	case hambavro.Enum:
		return &connect.Schema{Type: connect.TypeString, Name: s.(*hambavro.EnumSchema).FullName()}, nil

	case hambavro.Fixed:
		return &connect.Schema{Type: connect.TypeBytes, Name: s.(*hambavro.FixedSchema).FullName()}, nil

	case hambavro.Union:
		branch, err := nullableBranch(s.(*hambavro.UnionSchema))
		if err != nil {
			return nil, err
		}
		translated, err := translateSchema(branch, inProgress)
		if err != nil {
			return nil, err
		}
		optional := *translated
		optional.Optional = true
		return &optional, nil

	case hambavro.Ref:
		return translateSchema(s.(*hambavro.RefSchema).Schema(), inProgress)

	default:
		return nil, fmt.Errorf("%w: avro type %q has no internal representation", ErrSchemaTranslation, s.Type())
	}
}

// nullableBranch returns the single non-null branch of a ["null", T] union.
// Any other union shape is unsupported.
func nullableBranch(u *hambavro.UnionSchema) (hambavro.Schema, error) {
	if !u.Nullable() {
		types := make([]string, 0, len(u.Types()))
		for _, b := range u.Types() {
			types = append(types, string(b.Type()))
		}
		return nil, fmt.Errorf("%w: union %v is not a nullable single-type union", ErrSchemaTranslation, types)
	}
	for _, b := range u.Types() {
		if b.Type() != hambavro.Null {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: union has no non-null branch", ErrSchemaTranslation)
}

func translateValue(s hambavro.Schema, cs *connect.Schema, v any) (any, error) {
	switch s.Type() {
	case hambavro.Union:
		branch, err := nullableBranch(s.(*hambavro.UnionSchema))
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		// The generic decoder wraps some union branches in a single-entry
		// map keyed by the branch name.
		if wrapped, ok := v.(map[string]any); ok && len(wrapped) == 1 {
			if inner, ok := wrapped[branchName(branch)]; ok {
				v = inner
			}
		}
		return translateValue(branch, cs, v)

	case hambavro.Ref:
		return translateValue(s.(*hambavro.RefSchema).Schema(), cs, v)

	case hambavro.Record:
		decoded, ok := v.(map[string]any)
		if !ok {
			return nil, unexpectedValue(cs, v)
		}
		record := s.(*hambavro.RecordSchema)
		out := make(connect.Struct, len(cs.Fields))
		for i, f := range record.Fields() {
			field := cs.Fields[i]
			fieldValue, present := decoded[field.Name]
			if !present && !field.Schema.Optional {
				return nil, fmt.Errorf("%w: record %s is missing field %s", ErrSchemaTranslation, cs.Name, field.Name)
			}
			translated, err := translateValue(f.Type(), field.Schema, fieldValue)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
			out[field.Name] = translated
		}
		return out, nil

	case hambavro.Array:
		if v == nil {
			return []any{}, nil
		}
		decoded, ok := v.([]any)
		if !ok {
			return nil, unexpectedValue(cs, v)
		}
		items := s.(*hambavro.ArraySchema).Items()
		out := make([]any, len(decoded))
		for i, item := range decoded {
			translated, err := translateValue(items, cs.Items, item)
			if err != nil {
				return nil, err
			}
			out[i] = translated
		}
		return out, nil

	case hambavro.Map:
		if v == nil {
			return map[string]any{}, nil
		}
		decoded, ok := v.(map[string]any)
		if !ok {
			return nil, unexpectedValue(cs, v)
		}
		values := s.(*hambavro.MapSchema).Values()
		out := make(map[string]any, len(decoded))
		for key, item := range decoded {
			translated, err := translateValue(values, cs.Values, item)
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", key, err)
			}
			out[key] = translated
		}
		return out, nil

	default:
		return translatePrimitive(cs, v)
	}
}

func translatePrimitive(cs *connect.Schema, v any) (any, error) {
	switch cs.Type {
	case connect.TypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case connect.TypeInt32:
		switch n := v.(type) {
		case int32:
			return n, nil
		case int:
			return int32(n), nil
		}
	case connect.TypeInt64:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		}
	case connect.TypeFloat32:
		if n, ok := v.(float32); ok {
			return n, nil
		}
	case connect.TypeFloat64:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		}
	case connect.TypeString:
		if str, ok := v.(string); ok {
			return str, nil
		}
	case connect.TypeBytes:
		if b, ok := v.([]byte); ok {
			return b, nil
		}
		// Fixed values decode as byte arrays.
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
			out := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(out), rv)
			return out, nil
		}
	}
	return nil, unexpectedValue(cs, v)
}

// branchName is the key the generic decoder uses when it wraps a union
// branch value: the full name for named schemas, the type name otherwise.
func branchName(s hambavro.Schema) string {
	if named, ok := s.(hambavro.NamedSchema); ok {
		return named.FullName()
	}
	return string(s.Type())
}

func unexpectedValue(cs *connect.Schema, v any) error {
	return fmt.Errorf("%w: decoded value of type %T does not match schema type %s", ErrSchemaTranslation, v, cs.Type)
}
