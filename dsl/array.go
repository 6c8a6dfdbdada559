package dsl

import (
	"context"
	"reflect"
	"strconv"

	docview "github.com/reoring/docview"
	js "github.com/reoring/docview/jsonschema"
)

// List returns a list field type whose elements are typed by elem. Values are
// stored as []any; every Parse builds a fresh slice. null elements are kept
// as nil, as Map does for values.
func List(elem docview.FieldType) docview.FieldType { return listType{elem: elem} }

type listType struct{ elem docview.FieldType }

func (l listType) Kind() string { return "list" }

// Elem returns the element type.
func (l listType) Elem() docview.FieldType { return l.elem }

func (l listType) Parse(ctx context.Context, v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, invalidType("expected array")
	}
	if _, isBytes := v.([]byte); isBytes {
		return nil, invalidType("expected array")
	}
	out := make([]any, 0, rv.Len())
	var iss docview.Issues
	for i := 0; i < rv.Len(); i++ {
		raw := rv.Index(i).Interface()
		if raw == nil {
			out = append(out, nil)
			continue
		}
		ev, err := l.elem.Parse(ctx, raw)
		if err != nil {
			iss = docview.AppendIssues(iss, docview.RebaseIssues("/"+strconv.Itoa(i), err)...)
			if docview.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (l listType) Encode(v any) (any, error) {
	src, ok := v.([]any)
	if !ok {
		return nil, invalidType("expected []any")
	}
	out := make([]any, len(src))
	for i, ev := range src {
		if ev == nil {
			continue
		}
		w, err := l.elem.Encode(ev)
		if err != nil {
			return nil, docview.RebaseIssues("/"+strconv.Itoa(i), err)
		}
		out[i] = w
	}
	return out, nil
}

func (l listType) JSONSchema() (*js.Schema, error) {
	items, err := l.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "array", Items: items}, nil
}
