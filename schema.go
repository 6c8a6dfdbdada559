package docview

import (
	"context"

	js "github.com/reoring/docview/jsonschema"
)

// FieldType types and converts the value of one declared field. Implementations
// live in the dsl package.
type FieldType interface {
	// Kind names the type ("string", "datetime", "list", ...).
	Kind() string
	// Parse coerces a domain or wire value into the field's domain form.
	// Failures are Issues rooted at "/".
	Parse(ctx context.Context, v any) (any, error)
	// Encode converts a domain value into its wire form for serialization.
	Encode(v any) (any, error)
	// JSONSchema describes the field for schema export.
	JSONSchema() (*js.Schema, error)
}

// FieldDecl declares one named field of a Schema. It is a plain value and is
// copied as-is onto derived schemas.
type FieldDecl struct {
	Name       string
	Type       FieldType
	Required   bool
	Default    any
	HasDefault bool
}

// Schema is an immutable, named, ordered set of field declarations.
type Schema struct {
	name    string
	decls   []FieldDecl
	index   map[string]int
	unknown UnknownPolicy
}

// NewSchema validates the declarations and returns a Schema in declaration
// order. Empty or duplicate names and nil types are reported as Issues.
func NewSchema(name string, decls ...FieldDecl) (*Schema, error) {
	var iss Issues
	s := &Schema{name: name, decls: make([]FieldDecl, 0, len(decls)), index: make(map[string]int, len(decls))}
	for _, d := range decls {
		if d.Name == "" {
			iss = AppendIssues(iss, IssueAt("/", CodeInvalidFormat, nil))
			continue
		}
		if _, dup := s.index[d.Name]; dup {
			iss = AppendIssues(iss, IssueAt("/"+d.Name, CodeDuplicateField, map[string]any{"field": d.Name}))
			continue
		}
		if d.Type == nil {
			it := IssueAt("/"+d.Name, CodeInvalidType, nil)
			it.Hint = "field type is nil"
			iss = AppendIssues(iss, it)
			continue
		}
		s.index[d.Name] = len(s.decls)
		s.decls = append(s.decls, d)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(name string, decls ...FieldDecl) *Schema {
	s, err := NewSchema(name, decls...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithUnknown returns a copy of s that applies p when parsing documents.
func (s *Schema) WithUnknown(p UnknownPolicy) *Schema {
	out := *s
	out.unknown = p
	return &out
}

func (s *Schema) Name() string                 { return s.name }
func (s *Schema) Len() int                     { return len(s.decls) }
func (s *Schema) UnknownPolicy() UnknownPolicy { return s.unknown }

// Names returns the declared field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.decls))
	for i, d := range s.decls {
		out[i] = d.Name
	}
	return out
}

// Decls returns a copy of the declarations in declaration order.
func (s *Schema) Decls() []FieldDecl {
	out := make([]FieldDecl, len(s.decls))
	copy(out, s.decls)
	return out
}

// Field looks up a declaration by name.
func (s *Schema) Field(name string) (FieldDecl, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldDecl{}, false
	}
	return s.decls[i], true
}

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Subset returns a new schema named name holding the declarations for which
// keep reports true, in declaration order. The unknown policy is carried over.
func (s *Schema) Subset(name string, keep func(field string) bool) *Schema {
	out := &Schema{name: name, index: map[string]int{}, unknown: s.unknown}
	for _, d := range s.decls {
		if keep != nil && !keep(d.Name) {
			continue
		}
		out.index[d.Name] = len(out.decls)
		out.decls = append(out.decls, d)
	}
	return out
}

// JSONSchema projects the schema into a JSON Schema object.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(s.decls))
	var req []string
	for _, d := range s.decls {
		ps, err := d.Type.JSONSchema()
		if err != nil {
			return nil, err
		}
		if ps == nil {
			ps = &js.Schema{}
		}
		if d.HasDefault {
			if wire, err := d.Type.Encode(d.Default); err == nil {
				ps.Default = wire
			}
		}
		props[d.Name] = ps
		if d.Required {
			req = append(req, d.Name)
		}
	}
	// Runtime rejects unknown keys under strict, so mirror it as additionalProperties=false.
	var additional any
	if s.unknown == UnknownStrict {
		additional = false
	} else {
		additional = true
	}
	return &js.Schema{Schema: js.Draft, Title: s.name, Type: "object", Properties: props, Required: req, AdditionalProperties: additional}, nil
}
