package docview

import (
	"context"
	"errors"
)

// Document is an instance of a Schema holding one value per declared field.
// Unset fields hold nil. A Document is not safe for concurrent mutation.
type Document struct {
	schema *Schema
	values []any
}

// New creates an empty document of schema s with declared defaults applied.
// Defaults are stored as deep copies so documents never share them.
func New(s *Schema) *Document {
	d := &Document{schema: s, values: make([]any, len(s.decls))}
	for i, decl := range s.decls {
		if decl.HasDefault {
			d.values[i] = DeepCopy(decl.Default)
		}
	}
	return d
}

// NewWith creates a document and assigns every pair of fields through Set.
// Issues from all fields are collected unless the context is fail-fast.
func NewWith(ctx context.Context, s *Schema, fields map[string]any) (*Document, error) {
	d := New(s)
	var iss Issues
	for _, name := range s.Names() {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if err := d.Set(ctx, name, v); err != nil {
			iss = AppendIssues(iss, issuesOf(err)...)
			if IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	for _, k := range sortedKeys(fields) {
		if !s.Has(k) {
			iss = AppendIssues(iss, IssueAt("/"+k, CodeUnknownField, map[string]any{"field": k}))
			if IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return d, nil
}

// FromStruct builds a document from the exported fields of a struct using
// ResolveStructKey for naming. Struct fields the schema does not declare are
// ignored.
func FromStruct(ctx context.Context, s *Schema, v any) (*Document, error) {
	m, ok := structFields(v)
	if !ok {
		it := IssueAt("/", CodeInvalidType, nil)
		it.Hint = "expected struct or pointer to struct"
		return nil, Issues{it}
	}
	for k := range m {
		if !s.Has(k) {
			delete(m, k)
		}
	}
	return NewWith(ctx, s, m)
}

// Schema returns the document's schema.
func (d *Document) Schema() *Schema { return d.schema }

// Get reads a field. Undeclared names yield an unknown_field issue.
func (d *Document) Get(name string) (any, error) {
	i, ok := d.schema.index[name]
	if !ok {
		return nil, Issues{IssueAt("/"+name, CodeUnknownField, map[string]any{"field": name})}
	}
	return d.values[i], nil
}

// Set parses v through the field type and stores the result. nil clears the
// field. On error the document is left unchanged.
func (d *Document) Set(ctx context.Context, name string, v any) error {
	i, ok := d.schema.index[name]
	if !ok {
		return Issues{IssueAt("/"+name, CodeUnknownField, map[string]any{"field": name})}
	}
	if v == nil {
		d.values[i] = nil
		return nil
	}
	parsed, err := d.schema.decls[i].Type.Parse(ctx, v)
	if err != nil {
		return RebaseIssues("/"+name, err)
	}
	d.values[i] = parsed
	return nil
}

// MustSet is like Set but panics on error.
func (d *Document) MustSet(ctx context.Context, name string, v any) *Document {
	if err := d.Set(ctx, name, v); err != nil {
		panic(err)
	}
	return d
}

// ExportFields returns a deep-copied snapshot of every declared field in
// declaration order, including unset (nil) fields.
func (d *Document) ExportFields() Fields {
	var f Fields
	for i, decl := range d.schema.decls {
		f.set(decl.Name, DeepCopy(d.values[i]))
	}
	return f
}

// Validate reports required fields that are unset.
func (d *Document) Validate(ctx context.Context) error {
	var iss Issues
	for i, decl := range d.schema.decls {
		if decl.Required && d.values[i] == nil {
			iss = AppendIssues(iss, IssueAt("/"+decl.Name, CodeRequired, map[string]any{"field": decl.Name}))
			if IsFailFast(ctx) {
				return iss
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// Clone returns an independent copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{schema: d.schema, values: make([]any, len(d.values))}
	for i, v := range d.values {
		out.values[i] = DeepCopy(v)
	}
	return out
}

// wireFields converts every value to its wire form via the field types.
func (d *Document) wireFields(opt EncodeOpt) (Fields, error) {
	var f Fields
	var iss Issues
	for i, decl := range d.schema.decls {
		v := d.values[i]
		if v == nil {
			if !opt.OmitNull {
				f.set(decl.Name, nil)
			}
			continue
		}
		wire, err := decl.Type.Encode(v)
		if err != nil {
			iss = AppendIssues(iss, RebaseIssues("/"+decl.Name, encodeIssue(err))...)
			continue
		}
		f.set(decl.Name, wire)
	}
	if len(iss) > 0 {
		return Fields{}, iss
	}
	if opt.SortKeys {
		f = f.sorted()
	}
	return f, nil
}

func issuesOf(err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var anp *AttributeNotPermittedError
	if errors.As(err, &anp) {
		return anp.Issues()
	}
	return Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
}
