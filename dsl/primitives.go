package dsl

import (
	"context"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	docview "github.com/reoring/docview"
	"github.com/reoring/docview/codec"
	js "github.com/reoring/docview/jsonschema"
)

// String returns the string field type.
func String() docview.FieldType { return stringType{} }

// Bool returns the bool field type.
func Bool() docview.FieldType { return boolType{} }

// Int returns the integer field type. Values are stored as int64.
func Int() docview.FieldType { return intType{} }

// Number returns the floating point field type. Values are stored as float64.
func Number() docview.FieldType { return numberType{} }

// DateTime returns a timestamp field type. Values are stored as time.Time and
// serialized as RFC3339 strings in UTC.
func DateTime() docview.FieldType { return dateTimeType{c: codec.TimeRFC3339()} }

// UUID returns a UUID field type. Values are stored as uuid.UUID and
// serialized in canonical string form.
func UUID() docview.FieldType { return uuidType{c: codec.UUIDString()} }

// Any returns a field type that accepts any JSON-like value. Composite values
// are deep-copied on Parse.
func Any() docview.FieldType { return anyType{} }

func invalidType(hint string) error {
	it := docview.IssueAt("/", docview.CodeInvalidType, nil)
	it.Hint = hint
	return docview.Issues{it}
}

type stringType struct{}

func (stringType) Kind() string { return "string" }

func (stringType) Parse(ctx context.Context, v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case jsonNumber:
		return nil, invalidType("expected string")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), nil
	}
	return nil, invalidType("expected string")
}

func (stringType) Encode(v any) (any, error) { return v, nil }

func (stringType) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil }

type boolType struct{}

func (boolType) Kind() string { return "bool" }

func (boolType) Parse(ctx context.Context, v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, invalidType("expected boolean")
	}
	return b, nil
}

func (boolType) Encode(v any) (any, error) { return v, nil }

func (boolType) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }

// jsonNumber matches json.Number from both encoding/json and go-json.
type jsonNumber interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

type intType struct{}

func (intType) Kind() string { return "int" }

func (intType) Parse(ctx context.Context, v any) (any, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8, int16, int32, int64:
		return reflect.ValueOf(n).Int(), nil
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(n).Uint()
		if u > math.MaxInt64 {
			return nil, invalidType("integer overflows int64")
		}
		return int64(u), nil
	case float32, float64:
		f := reflect.ValueOf(n).Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, invalidType("expected integer")
		}
		return int64(f), nil
	case jsonNumber:
		i, err := n.Int64()
		if err != nil {
			return nil, invalidType("expected integer")
		}
		return i, nil
	}
	return nil, invalidType("expected integer")
}

func (intType) Encode(v any) (any, error) { return v, nil }

func (intType) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "integer"}, nil }

type numberType struct{}

func (numberType) Kind() string { return "number" }

func (numberType) Parse(ctx context.Context, v any) (any, error) {
	var f float64
	switch n := v.(type) {
	case float32, float64:
		f = reflect.ValueOf(n).Float()
	case int, int8, int16, int32, int64:
		f = float64(reflect.ValueOf(n).Int())
	case uint, uint8, uint16, uint32, uint64:
		f = float64(reflect.ValueOf(n).Uint())
	case jsonNumber:
		var err error
		if f, err = n.Float64(); err != nil {
			return nil, invalidType("expected number")
		}
	default:
		return nil, invalidType("expected number")
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, invalidType("NaN and Inf are not allowed")
	}
	return f, nil
}

func (numberType) Encode(v any) (any, error) { return v, nil }

func (numberType) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil }

type dateTimeType struct{ c codec.Codec[string, time.Time] }

func (dateTimeType) Kind() string { return "datetime" }

func (t dateTimeType) Parse(ctx context.Context, v any) (any, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case *time.Time:
		if x == nil {
			return nil, invalidType("expected timestamp")
		}
		return *x, nil
	case string:
		return t.c.Decode(ctx, x)
	}
	return nil, invalidType("expected RFC3339 timestamp")
}

func (t dateTimeType) Encode(v any) (any, error) {
	tm, ok := v.(time.Time)
	if !ok {
		return nil, invalidType("expected time.Time")
	}
	return t.c.Encode(context.Background(), tm)
}

func (dateTimeType) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}

type uuidType struct{ c codec.Codec[string, uuid.UUID] }

func (uuidType) Kind() string { return "uuid" }

func (t uuidType) Parse(ctx context.Context, v any) (any, error) {
	switch x := v.(type) {
	case uuid.UUID:
		return x, nil
	case string:
		return t.c.Decode(ctx, x)
	case [16]byte:
		return uuid.UUID(x), nil
	}
	return nil, invalidType("expected UUID")
}

func (t uuidType) Encode(v any) (any, error) {
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil, invalidType("expected uuid.UUID")
	}
	return t.c.Encode(context.Background(), id)
}

func (uuidType) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "uuid"}, nil
}

type anyType struct{}

func (anyType) Kind() string { return "any" }

func (anyType) Parse(ctx context.Context, v any) (any, error) { return docview.DeepCopy(v), nil }

func (anyType) Encode(v any) (any, error) { return normalizeWire(v), nil }

func (anyType) JSONSchema() (*js.Schema, error) { return &js.Schema{}, nil }

// normalizeWire turns json.Number values into int64/float64 so that every
// output format renders them as numbers.
func normalizeWire(v any) any {
	switch t := v.(type) {
	case jsonNumber:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(t.String(), 64); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeWire(t[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeWire(vv)
		}
		return out
	}
	return v
}
