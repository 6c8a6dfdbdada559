package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	gojson "github.com/goccy/go-json"

	docview "github.com/reoring/docview"
	"github.com/reoring/docview/dsl"
	"github.com/reoring/docview/middleware"
	"github.com/reoring/docview/view"
)

func post(t *testing.T) *docview.Document {
	t.Helper()
	s := dsl.Document("Post").
		Field("name", dsl.String()).
		Field("body", dsl.String()).
		Field("password", dsl.String()).
		MustBuild()
	doc, err := docview.NewWith(context.Background(), s, map[string]any{"name": "n", "body": "b", "password": "p"})
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func handler(t *testing.T) http.Handler {
	reg := view.NewRegistry().MustRegister(view.NewPolicy("Public", "name", "body"))
	doc := post(t)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteDocument(w, r, reg, doc)
	})
	return middleware.WithPolicy(func(r *http.Request) string { return r.Header.Get("X-View") })(h)
}

func TestWriteDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/post", nil)
	req.Header.Set("X-View", "Public")
	handler(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if rec.Body.String() != `{"name":"n","body":"b"}` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestWriteDocument_UnknownPolicy(t *testing.T) {
	for _, hdr := range []string{"", "Admin"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/post", nil)
		req.Header.Set("X-View", hdr)
		handler(t).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%q: expected 403, got %d", hdr, rec.Code)
		}
		var body struct {
			Issues []struct {
				Code string `json:"code"`
			} `json:"issues"`
		}
		if err := gojson.Unmarshal(rec.Body.Bytes(), &body); err != nil || len(body.Issues) != 1 || body.Issues[0].Code != docview.CodeUnknownPolicy {
			t.Fatalf("%q: unexpected body %s (err=%v)", hdr, rec.Body.String(), err)
		}
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&docview.AttributeNotPermittedError{View: "Public", Field: "password"}, http.StatusForbidden},
		{&docview.SchemaDerivationError{View: "Public", Field: "x", Cause: docview.Issues{{Code: docview.CodeInvalidType}}}, http.StatusInternalServerError},
		{docview.Issues{{Code: docview.CodeRequired}}, http.StatusBadRequest},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := middleware.StatusFor(tc.err); got != tc.want {
			t.Fatalf("%v: got %d want %d", tc.err, got, tc.want)
		}
	}
}

func TestWriteError_NotPermitted(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.WriteError(rec, &docview.AttributeNotPermittedError{View: "Public", Field: "password"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body map[string][]map[string]string
	if err := gojson.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := body["issues"][0]; got["path"] != "/password" || got["code"] != docview.CodeNotPermitted {
		t.Fatalf("unexpected payload: %v", body)
	}
}

func TestWriteView_YAML(t *testing.T) {
	v := view.New(view.NewPolicy("Public", "name"), post(t))
	rec := httptest.NewRecorder()
	middleware.WriteView(rec, httptest.NewRequest(http.MethodGet, "/", nil), v, docview.WithFormat(docview.FormatYAML))
	// yaml.v3 quotes "n" since it reads as a YAML 1.1 boolean
	if rec.Header().Get("Content-Type") != "application/yaml" || rec.Body.String() != "name: \"n\"\n" {
		t.Fatalf("unexpected response: %s %q", rec.Header().Get("Content-Type"), rec.Body.String())
	}
}
