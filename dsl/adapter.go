package dsl

import (
	"context"
	"reflect"
	"slices"

	docview "github.com/reoring/docview"
	js "github.com/reoring/docview/jsonschema"
)

// constrained wraps a FieldType with value checks that run after Parse, and
// with JSON Schema augmentation. Wrapping keeps Kind and Encode of the base.
type constrained struct {
	base   docview.FieldType
	check  func(ctx context.Context, v any) error
	schema func(s *js.Schema)
}

func wrap(base docview.FieldType, check func(context.Context, any) error, schema func(*js.Schema)) docview.FieldType {
	return constrained{base: base, check: check, schema: schema}
}

func (c constrained) Kind() string { return c.base.Kind() }

func (c constrained) Parse(ctx context.Context, v any) (any, error) {
	out, err := c.base.Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	if c.check != nil {
		if err := c.check(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c constrained) Encode(v any) (any, error) { return c.base.Encode(v) }

func (c constrained) JSONSchema() (*js.Schema, error) {
	s, err := c.base.JSONSchema()
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &js.Schema{}
	}
	if c.schema != nil {
		c.schema(s)
	}
	return s, nil
}

func ruleIssue(code string, params map[string]any) error {
	return docview.Issues{docview.IssueAt("/", code, params)}
}

// Min sets a numeric minimum (inclusive) constraint at runtime and in JSON Schema.
// Non-numeric values are ignored by this guard (type errors are handled by the base).
func Min(ft docview.FieldType, n float64) docview.FieldType {
	return wrap(ft, func(_ context.Context, v any) error {
		if f, ok := toFloat(v); ok && f < n {
			return ruleIssue(CodeTooSmall, map[string]any{"min": n, "got": f})
		}
		return nil
	}, func(s *js.Schema) { s.Minimum = &n })
}

// Max sets a numeric maximum (inclusive) constraint at runtime and in JSON Schema.
func Max(ft docview.FieldType, n float64) docview.FieldType {
	return wrap(ft, func(_ context.Context, v any) error {
		if f, ok := toFloat(v); ok && f > n {
			return ruleIssue(CodeTooBig, map[string]any{"max": n, "got": f})
		}
		return nil
	}, func(s *js.Schema) { s.Maximum = &n })
}

// MaxLen bounds the length of strings and lists.
func MaxLen(ft docview.FieldType, n int) docview.FieldType {
	return wrap(ft, func(_ context.Context, v any) error {
		if l, ok := lengthOf(v); ok && l > n {
			return ruleIssue(CodeTooLong, map[string]any{"max": n, "got": l})
		}
		return nil
	}, nil)
}

// Enum restricts a string field to the given values.
func Enum(ft docview.FieldType, values ...string) docview.FieldType {
	allowed := slices.Clone(values)
	return wrap(ft, func(_ context.Context, v any) error {
		s, ok := v.(string)
		if ok && !slices.Contains(allowed, s) {
			return ruleIssue(CodeInvalidEnum, map[string]any{"got": s})
		}
		return nil
	}, nil)
}

// Refine adds a custom check executed after the base type parsed the value.
// Plain errors are reported with code "custom".
func Refine(ft docview.FieldType, name string, fn func(ctx context.Context, v any) error) docview.FieldType {
	if fn == nil {
		return ft
	}
	return wrap(ft, func(ctx context.Context, v any) error {
		if err := fn(ctx, v); err != nil {
			if iss, ok := docview.AsIssues(err); ok {
				return iss
			}
			return docview.Issues{docview.Issue{Path: "/", Code: "custom", Message: err.Error(), Hint: name, Cause: err}}
		}
		return nil
	}, nil)
}

// Rule codes produced by the constraint wrappers.
const (
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
	CodeTooLong     = "too_long"
	CodeInvalidEnum = "invalid_enum"
)

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func lengthOf(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return len([]rune(s)), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}
