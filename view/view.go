package view

import (
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"

	docview "github.com/reoring/docview"
	js "github.com/reoring/docview/jsonschema"
)

// View exposes a whitelisted subset of one document. It borrows the document
// and keeps no derived state; every call consults the policy afresh.
type View struct {
	policy *Policy
	doc    docview.Reader
}

// New wraps doc with policy. Neither argument is copied.
func New(policy *Policy, doc docview.Reader) *View {
	return &View{policy: policy, doc: doc}
}

// Name returns the policy name.
func (v *View) Name() string { return v.policy.Name() }

// Policy returns the policy the view enforces.
func (v *View) Policy() *Policy { return v.policy }

// Get reads a whitelisted field from the document. Fields outside the
// whitelist fail with *docview.AttributeNotPermittedError whether or not the
// document declares them; whitelisted names the document does not declare
// fail with the document's unknown_field issue. Composite values are
// returned as deep copies.
func (v *View) Get(name string) (any, error) {
	if !v.policy.Permits(name) {
		return nil, &docview.AttributeNotPermittedError{View: v.policy.Name(), Field: name}
	}
	val, err := v.doc.Get(name)
	if err != nil {
		return nil, err
	}
	return docview.DeepCopy(val), nil
}

// MustGet is like Get but panics on error.
func (v *View) MustGet(name string) any {
	val, err := v.Get(name)
	if err != nil {
		panic(err)
	}
	return val
}

// Has reports whether name is both whitelisted and declared by the document.
func (v *View) Has(name string) bool {
	return v.policy.Permits(name) && v.doc.Schema().Has(name)
}

// Fields lists the readable fields in schema declaration order.
func (v *View) Fields() []string { return v.reducedSchema().Names() }

// GetAs reads a whitelisted field and asserts its stored type.
func GetAs[T any](v *View, name string) (T, error) {
	var zero T
	val, err := v.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := val.(T)
	if !ok {
		it := docview.IssueAt("/"+name, docview.CodeInvalidType, map[string]any{"field": name})
		it.Hint = fmt.Sprintf("stored %T, requested %T", val, zero)
		return zero, docview.Issues{it}
	}
	return t, nil
}

// Filtered derives a new document bound to the reduced schema and populated
// with deep copies of the source values. It either returns a fully populated
// document or a *docview.SchemaDerivationError; partial results are dropped.
func (v *View) Filtered(ctx context.Context) (*docview.Document, error) {
	src := v.doc.ExportFields()
	reduced := v.reducedSchema()
	out := docview.New(reduced)
	for _, f := range src.Items() {
		if !reduced.Has(f.Name) {
			continue
		}
		if err := out.Set(ctx, f.Name, docview.DeepCopy(f.Value)); err != nil {
			return nil, &docview.SchemaDerivationError{View: v.policy.Name(), Field: f.Name, Cause: err}
		}
	}
	return out, nil
}

// Export returns the filtered snapshot without serializing it.
func (v *View) Export(ctx context.Context) (docview.Fields, error) {
	fd, err := v.Filtered(ctx)
	if err != nil {
		return docview.Fields{}, err
	}
	return fd.ExportFields(), nil
}

// Serialize derives the filtered document and delegates to its Serialize,
// forwarding opts unchanged. The output holds exactly the whitelisted fields
// the document declares.
func (v *View) Serialize(ctx context.Context, opts ...docview.EncodeOption) ([]byte, error) {
	fd, err := v.Filtered(ctx)
	if err != nil {
		return nil, err
	}
	return fd.Serialize(ctx, opts...)
}

// JSONSchema describes the filtered document.
func (v *View) JSONSchema() (*js.Schema, error) { return v.reducedSchema().JSONSchema() }

// DecodeInto serializes the view as JSON and decodes it into out, so a Go
// struct can stand in for the restricted document.
func DecodeInto[T any](ctx context.Context, v *View, out *T) error {
	data, err := v.Serialize(ctx, docview.WithOmitNull())
	if err != nil {
		return err
	}
	if err := gojson.Unmarshal(data, out); err != nil {
		return fmt.Errorf("view: decode %q into %T: %w", v.policy.Name(), out, err)
	}
	return nil
}
