package dsl

import (
	"context"
	"reflect"
	"sort"

	docview "github.com/reoring/docview"
	js "github.com/reoring/docview/jsonschema"
)

// Map returns a field type for string-keyed objects whose values are typed by
// elem. Values are stored as map[string]any; every Parse builds a fresh map.
func Map(elem docview.FieldType) docview.FieldType { return mapType{elem: elem} }

// MapAny is Map(Any()).
func MapAny() docview.FieldType { return mapType{elem: anyType{}} }

type mapType struct{ elem docview.FieldType }

func (m mapType) Kind() string { return "map" }

func (m mapType) Parse(ctx context.Context, v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, invalidType("expected object")
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	// key-sorted for deterministic issue order
	sort.Strings(keys)
	out := make(map[string]any, len(keys))
	var iss docview.Issues
	for _, k := range keys {
		raw := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
		if raw == nil {
			out[k] = nil
			continue
		}
		ev, err := m.elem.Parse(ctx, raw)
		if err != nil {
			iss = docview.AppendIssues(iss, docview.RebaseIssues("/"+k, err)...)
			if docview.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[k] = ev
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (m mapType) Encode(v any) (any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType("expected map[string]any")
	}
	out := make(map[string]any, len(src))
	for k, ev := range src {
		if ev == nil {
			out[k] = nil
			continue
		}
		w, err := m.elem.Encode(ev)
		if err != nil {
			return nil, docview.RebaseIssues("/"+k, err)
		}
		out[k] = w
	}
	return out, nil
}

func (m mapType) JSONSchema() (*js.Schema, error) {
	vs, err := m.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	var additional any = vs
	if vs == nil || m.elem.Kind() == "any" {
		additional = true
	}
	return &js.Schema{Type: "object", AdditionalProperties: additional}, nil
}
