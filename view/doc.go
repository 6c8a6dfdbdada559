// Package view restricts documents to a whitelist of top-level fields.
//
// A Policy names a whitelist ("Public", "Admin") and is declared once per
// kind of view. A View pairs one policy with one document: Get enforces the
// whitelist on every read, and Serialize derives a filtered document whose
// schema is the whitelist-intersected schema of the source before delegating
// to the document's own serialization.
//
// Views never mutate or own the wrapped document. Filtered documents are built
// per call, hold deep copies of the source values, and are never cached.
//
//	public := view.NewPolicy("Public", "name", "body")
//	v := view.New(public, doc)
//	name, err := v.Get("name")     // ok
//	_, err = v.Get("password")     // *docview.AttributeNotPermittedError
//	out, err := v.Serialize(ctx)   // {"name":...,"body":...}
package view
