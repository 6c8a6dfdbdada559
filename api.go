package docview

import "context"

// Reader is the read side of a document consumed by views: schema
// introspection, single-field reads, and a full export snapshot.
type Reader interface {
	Schema() *Schema
	Get(name string) (any, error)
	ExportFields() Fields
}

// Serializer produces a textual encoding of a document.
type Serializer interface {
	Serialize(ctx context.Context, opts ...EncodeOption) ([]byte, error)
}

var (
	_ Reader     = (*Document)(nil)
	_ Serializer = (*Document)(nil)
)

// ---- Parse-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// This is set by ParseDocument based on ParseOpt and consumed by field types.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
