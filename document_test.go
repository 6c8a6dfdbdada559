package docview_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	docview "github.com/reoring/docview"
	g "github.com/reoring/docview/dsl"
)

func noteSchema() *docview.Schema {
	return g.Document("Note").
		Field("title", g.String()).Required().
		Field("count", g.Int()).Default(1).
		Field("tags", g.List(g.String())).
		Field("meta", g.MapAny()).
		MustBuild()
}

func TestDocument_NewAppliesDefaults(t *testing.T) {
	d := docview.New(noteSchema())
	if v, _ := d.Get("count"); v != int64(1) {
		t.Fatalf("default not applied: %v", v)
	}
	if v, _ := d.Get("title"); v != nil {
		t.Fatalf("unset field should be nil, got %v", v)
	}
	if err := d.Validate(context.Background()); err == nil {
		t.Fatalf("expected required issue for title")
	}
}

func TestDocument_SetGet(t *testing.T) {
	ctx := context.Background()
	d := docview.New(noteSchema())

	if err := d.Set(ctx, "tags", []string{"a"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := d.Get("tags"); !reflect.DeepEqual(v, []any{"a"}) {
		t.Fatalf("unexpected tags: %#v", v)
	}

	err := d.Set(ctx, "tags", []any{"ok", 3})
	iss, ok := docview.AsIssues(err)
	if !ok || iss[0].Path != "/tags/1" || iss[0].Code != docview.CodeInvalidType {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := d.Get("tags"); !reflect.DeepEqual(v, []any{"a"}) {
		t.Fatalf("failed Set must leave the value unchanged: %#v", v)
	}

	if err := d.Set(ctx, "tags", nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if v, _ := d.Get("tags"); v != nil {
		t.Fatalf("nil should clear, got %v", v)
	}

	_, err = d.Get("nope")
	if iss, ok := docview.AsIssues(err); !ok || iss[0].Code != docview.CodeUnknownField {
		t.Fatalf("expected unknown_field, got %v", err)
	}
	if err := d.Set(ctx, "nope", 1); err == nil {
		t.Fatalf("expected unknown_field on Set")
	}
}

func TestDocument_NewWithCollectsIssues(t *testing.T) {
	ctx := context.Background()
	_, err := docview.NewWith(ctx, noteSchema(), map[string]any{"title": 1, "count": "x", "zzz": 1})
	iss, ok := docview.AsIssues(err)
	if !ok || len(iss) != 3 {
		t.Fatalf("expected 3 issues, got %v", err)
	}
	if iss[0].Path != "/title" || iss[1].Path != "/count" || iss[2].Code != docview.CodeUnknownField {
		t.Fatalf("unexpected issues: %v", iss)
	}

	_, err = docview.NewWith(docview.WithFailFast(ctx, true), noteSchema(), map[string]any{"title": 1, "count": "x"})
	if iss, _ := docview.AsIssues(err); len(iss) != 1 {
		t.Fatalf("fail-fast should report one issue, got %v", iss)
	}
}

func TestDocument_ExportFieldsIsDeepCopy(t *testing.T) {
	ctx := context.Background()
	d, err := docview.NewWith(ctx, noteSchema(), map[string]any{
		"title": "t",
		"meta":  map[string]any{"k": []any{"v"}},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	f := d.ExportFields()
	if !reflect.DeepEqual(f.Keys(), []string{"title", "count", "tags", "meta"}) {
		t.Fatalf("unexpected keys: %v", f.Keys())
	}
	meta, _ := f.Get("meta")
	meta.(map[string]any)["k"].([]any)[0] = "changed"
	orig, _ := d.Get("meta")
	if orig.(map[string]any)["k"].([]any)[0] != "v" {
		t.Fatalf("export aliases document state")
	}

	c := d.Clone()
	_ = c.Set(ctx, "title", "other")
	if v, _ := d.Get("title"); v != "t" {
		t.Fatalf("clone aliases document state")
	}
}

type noteStruct struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Other string   `json:"other"`
}

func TestDocument_FromStruct(t *testing.T) {
	ctx := context.Background()
	d, err := docview.FromStruct(ctx, noteSchema(), &noteStruct{Title: "t", Tags: []string{"x"}, Other: "ignored"})
	if err != nil {
		t.Fatalf("from struct: %v", err)
	}
	if v, _ := d.Get("title"); v != "t" {
		t.Fatalf("unexpected title: %v", v)
	}
	if _, err := docview.FromStruct(ctx, noteSchema(), 3); err == nil {
		t.Fatalf("expected error for non-struct")
	}
	var nilPtr *noteStruct
	if _, err := docview.FromStruct(ctx, noteSchema(), nilPtr); err == nil {
		t.Fatalf("expected error for nil pointer")
	}
}

func TestErrors_TypedViewErrors(t *testing.T) {
	anp := &docview.AttributeNotPermittedError{View: "Public", Field: "password"}
	if !errors.Is(anp, docview.ErrAttributeNotPermitted) || errors.Is(anp, docview.ErrSchemaDerivation) {
		t.Fatalf("unexpected Is behaviour")
	}
	if iss := anp.Issues(); iss[0].Path != "/password" || iss[0].Code != docview.CodeNotPermitted {
		t.Fatalf("unexpected issues: %v", iss)
	}
	if got := anp.Error(); got != `docview: view "Public" does not permit field "password"` {
		t.Fatalf("unexpected message: %s", got)
	}

	cause := docview.Issues{{Path: "/x", Code: docview.CodeInvalidType}}
	sde := &docview.SchemaDerivationError{View: "Public", Field: "x", Cause: cause}
	if !errors.Is(sde, docview.ErrSchemaDerivation) {
		t.Fatalf("expected ErrSchemaDerivation")
	}
	if got, ok := docview.AsIssues(sde); !ok || got[0].Path != "/x" {
		t.Fatalf("cause should unwrap, got %v", got)
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := docview.Issues{
		{Path: "/a", Code: "required"},
		{Path: "/b", Code: "invalid_type"},
		{Path: "/c", Code: "unknown_key"},
		{Path: "/d", Code: "unknown_key"},
	}
	want := "required at /a; invalid_type at /b; unknown_key at /c; ... (total 4)"
	if iss.Error() != want {
		t.Fatalf("got %q", iss.Error())
	}
	if got := docview.RebaseIssues("/root", iss[:1]); got[0].Path != "/root/a" {
		t.Fatalf("unexpected rebase: %v", got)
	}
	if got := docview.RebaseIssues("/root", errors.New("boom")); got[0].Code != docview.CodeParseError || got[0].Path != "/root" {
		t.Fatalf("plain errors should become parse_error at base: %v", got)
	}
}
