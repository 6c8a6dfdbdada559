// Package middleware adapts views to net/http handlers: responses are written
// through a view and errors are mapped to status codes with an issue payload.
package middleware

import (
	"context"
	"errors"
	"net/http"

	gojson "github.com/goccy/go-json"

	docview "github.com/reoring/docview"
	"github.com/reoring/docview/view"
)

// ctxKeyPolicy is a typed context key for the policy name chosen per request.
type ctxKeyPolicy struct{}

// ContextWithPolicy records the policy name to render responses with.
func ContextWithPolicy(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ctxKeyPolicy{}, name)
}

// PolicyFromContext returns the policy name stored by ContextWithPolicy.
func PolicyFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyPolicy{}).(string)
	return v, ok && v != ""
}

// WithPolicy stores the result of choose(r) as the request's policy name.
func WithPolicy(choose func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ContextWithPolicy(r.Context(), choose(r))))
		})
	}
}

// WriteDocument renders doc through the request's policy from reg. Requests
// without a policy, or with one reg does not know, get 403.
func WriteDocument(w http.ResponseWriter, r *http.Request, reg *view.Registry, doc docview.Reader, opts ...docview.EncodeOption) {
	name, _ := PolicyFromContext(r.Context())
	v, err := reg.View(name, doc)
	if err != nil {
		writeJSON(w, http.StatusForbidden, ErrorPayload(err))
		return
	}
	WriteView(w, r, v, opts...)
}

// WriteView serializes v as the response body.
func WriteView(w http.ResponseWriter, r *http.Request, v *view.View, opts ...docview.EncodeOption) {
	body, err := v.Serialize(r.Context(), opts...)
	if err != nil {
		WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(opts))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// StatusFor maps view and document errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, docview.ErrAttributeNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, docview.ErrSchemaDerivation):
		return http.StatusInternalServerError
	}
	if _, ok := docview.AsIssues(err); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteError writes err as a JSON issue payload with the status from StatusFor.
func WriteError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), ErrorPayload(err))
}

type issuePayload struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// ErrorPayload shapes an error for JSON responses.
func ErrorPayload(err error) map[string]any {
	var anp *docview.AttributeNotPermittedError
	if errors.As(err, &anp) {
		return map[string]any{"issues": issuesPayload(anp.Issues())}
	}
	if iss, ok := docview.AsIssues(err); ok {
		return map[string]any{"issues": issuesPayload(iss)}
	}
	return map[string]any{"error": err.Error()}
}

func issuesPayload(iss docview.Issues) []issuePayload {
	out := make([]issuePayload, len(iss))
	for i, it := range iss {
		out[i] = issuePayload{Path: it.Path, Code: it.Code, Message: it.Message, Hint: it.Hint}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = gojson.NewEncoder(w).Encode(v)
}

func contentType(opts []docview.EncodeOption) string {
	var opt docview.EncodeOpt
	for _, o := range opts {
		if o != nil {
			o(&opt)
		}
	}
	if opt.Format == docview.FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}
