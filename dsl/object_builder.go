package dsl

import (
	"context"

	docview "github.com/reoring/docview"
)

type documentBuilder struct {
	name    string
	decls   []docview.FieldDecl
	index   map[string]int
	unknown docview.UnknownPolicy
	issues  docview.Issues
}

type fieldStep struct {
	b    *documentBuilder
	name string
}

// Document creates a new schema builder with safe defaults (UnknownStrict).
func Document(name string) *documentBuilder {
	return &documentBuilder{name: name, index: map[string]int{}, unknown: docview.UnknownStrict}
}

// Field registers a field with its type. Registering a name twice replaces
// the earlier declaration in place.
func (b *documentBuilder) Field(name string, ft docview.FieldType) *fieldStep {
	if i, ok := b.index[name]; ok {
		b.decls[i] = docview.FieldDecl{Name: name, Type: ft}
	} else {
		b.index[name] = len(b.decls)
		b.decls = append(b.decls, docview.FieldDecl{Name: name, Type: ft})
	}
	return &fieldStep{b: b, name: name}
}

func (f *fieldStep) decl() *docview.FieldDecl { return &f.b.decls[f.b.index[f.name]] }

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *documentBuilder {
	f.decl().Required = true
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *documentBuilder {
	f.decl().Required = false
	return f.b
}

// Default sets a default for the current field. The value is parsed through
// the field type at build time so that documents hold the domain form.
func (f *fieldStep) Default(v any) *documentBuilder {
	d := f.decl()
	parsed, err := d.Type.Parse(context.Background(), v)
	if err != nil {
		f.b.issues = docview.AppendIssues(f.b.issues, docview.RebaseIssues("/"+f.name, err)...)
		return f.b
	}
	d.Default = parsed
	d.HasDefault = true
	return f.b
}

func (f *fieldStep) Field(name string, ft docview.FieldType) *fieldStep { return f.b.Field(name, ft) }
func (f *fieldStep) Require(names ...string) *documentBuilder          { return f.b.Require(names...) }
func (f *fieldStep) UnknownStrict() *documentBuilder                    { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *documentBuilder                     { return f.b.UnknownStrip() }
func (f *fieldStep) Build() (*docview.Schema, error)                    { return f.b.Build() }
func (f *fieldStep) MustBuild() *docview.Schema                         { return f.b.MustBuild() }

// Require marks one or more fields as required. Unknown names are reported at Build.
func (b *documentBuilder) Require(names ...string) *documentBuilder {
	for _, n := range names {
		i, ok := b.index[n]
		if !ok {
			b.issues = docview.AppendIssues(b.issues, docview.IssueAt("/"+n, docview.CodeUnknownField, map[string]any{"field": n}))
			continue
		}
		b.decls[i].Required = true
	}
	return b
}

// UnknownStrict rejects undeclared keys when parsing documents.
func (b *documentBuilder) UnknownStrict() *documentBuilder {
	b.unknown = docview.UnknownStrict
	return b
}

// UnknownStrip drops undeclared keys when parsing documents.
func (b *documentBuilder) UnknownStrip() *documentBuilder {
	b.unknown = docview.UnknownStrip
	return b
}

// Build validates the builder and returns a Schema.
func (b *documentBuilder) Build() (*docview.Schema, error) {
	if len(b.issues) > 0 {
		return nil, b.issues
	}
	s, err := docview.NewSchema(b.name, b.decls...)
	if err != nil {
		return nil, err
	}
	return s.WithUnknown(b.unknown), nil
}

// MustBuild is like Build but panics on error.
func (b *documentBuilder) MustBuild() *docview.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
