package dsl

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	docview "github.com/reoring/docview"
)

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidRT   = reflect.TypeOf(uuid.UUID{})
)

// StructOf derives a schema from the exported fields of struct type T. Names
// follow docview.ResolveStructKey; a `docview:"required"` tag marks a field
// required. Field types are inferred from Go types; anything not recognized
// becomes Any().
func StructOf[T any](name string) (*docview.Schema, error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		it := docview.IssueAt("/", docview.CodeInvalidType, nil)
		it.Hint = "StructOf requires a struct type"
		return nil, docview.Issues{it}
	}
	b := Document(name)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := docview.ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		step := b.Field(key, fieldTypeOf(sf.Type))
		if hasTagOption(sf.Tag.Get("docview"), "required") {
			step.Required()
		}
	}
	return b.Build()
}

// MustStructOf is like StructOf but panics on error.
func MustStructOf[T any](name string) *docview.Schema {
	s, err := StructOf[T](name)
	if err != nil {
		panic(err)
	}
	return s
}

func fieldTypeOf(t reflect.Type) docview.FieldType {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t {
	case timeType:
		return DateTime()
	case uuidRT:
		return UUID()
	}
	switch t.Kind() {
	case reflect.String:
		return String()
	case reflect.Bool:
		return Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int()
	case reflect.Float32, reflect.Float64:
		return Number()
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return String()
		}
		return List(fieldTypeOf(t.Elem()))
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return Map(fieldTypeOf(t.Elem()))
		}
	}
	return Any()
}

func hasTagOption(tag, opt string) bool {
	for _, p := range strings.Split(tag, ",") {
		if strings.TrimSpace(p) == opt {
			return true
		}
	}
	return false
}
