// Package docview provides:
//
// - Schemas: named, ordered field declarations typed by FieldType (see dsl/)
// - Documents: one value per declared field, with export and serialization
// - A stable error model via Issues (JSON Pointer, code, message)
// - The typed errors raised by views (package view): AttributeNotPermittedError
//   and SchemaDerivationError
//
// Design policy:
// - Keep the document model in the root package; field types and builders live
//   under dsl/, codecs under codec/, projections under view/, the CLI under
//   cmd/docview.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	post := dsl.Document("Post").
//	    Field("name", dsl.String()).Required().
//	    Field("password", dsl.String()).
//	    MustBuild()
//	doc, err := docview.NewWith(ctx, post, map[string]any{"name": "hi", "password": "x"})
//
//	public := view.NewPolicy("Public", "name")
//	out, err := view.New(public, doc).Serialize(ctx, docview.WithIndent("", "  "))
package docview
