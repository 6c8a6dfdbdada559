package dsl_test

import (
	"context"
	"reflect"
	"testing"

	docview "github.com/reoring/docview"
	g "github.com/reoring/docview/dsl"
)

func TestDocumentBuilder_Basics(t *testing.T) {
	s, err := g.Document("Post").
		Field("name", g.String()).Required().
		Field("score", g.Int()).Default(0).
		Field("body", g.String()).
		UnknownStrip().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !reflect.DeepEqual(s.Names(), []string{"name", "score", "body"}) {
		t.Fatalf("unexpected order: %v", s.Names())
	}
	if s.UnknownPolicy() != docview.UnknownStrip {
		t.Fatalf("expected strip")
	}
	d, _ := s.Field("score")
	if !d.HasDefault || d.Default != int64(0) {
		t.Fatalf("default should be parsed to int64: %+v", d)
	}
	if n, _ := s.Field("name"); !n.Required {
		t.Fatalf("name should be required")
	}

	doc := docview.New(s)
	if v, _ := doc.Get("score"); v != int64(0) {
		t.Fatalf("new document should carry the default, got %v", v)
	}
}

func TestDocumentBuilder_FieldReplacesInPlace(t *testing.T) {
	s := g.Document("X").
		Field("a", g.String()).
		Field("b", g.String()).
		Field("a", g.Int()).
		MustBuild()
	if !reflect.DeepEqual(s.Names(), []string{"a", "b"}) {
		t.Fatalf("unexpected order: %v", s.Names())
	}
	if d, _ := s.Field("a"); d.Type.Kind() != "int" {
		t.Fatalf("expected replacement type, got %s", d.Type.Kind())
	}
}

func TestDocumentBuilder_Errors(t *testing.T) {
	_, err := g.Document("X").Field("a", g.String()).Require("a", "missing").Build()
	iss := expectCode(t, err, docview.CodeUnknownField)
	if iss[0].Path != "/missing" {
		t.Fatalf("unexpected path: %v", iss)
	}

	_, err = g.Document("X").Field("n", g.Int()).Default("zero").Build()
	iss = expectCode(t, err, docview.CodeInvalidType)
	if iss[0].Path != "/n" {
		t.Fatalf("unexpected path: %v", iss)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustBuild should panic")
		}
	}()
	g.Document("X").Field("", g.String()).MustBuild()
}

func TestDocumentBuilder_ParseDocumentStrict(t *testing.T) {
	ctx := context.Background()
	s := g.Document("Post").
		Field("name", g.String()).Required().
		Field("tags", g.List(g.String())).
		MustBuild()

	_, err := docview.ParseDocument(ctx, s, []byte(`{"tags":["a",1],"zzz":true,"aaa":1}`))
	iss, ok := docview.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	var got []string
	for _, it := range iss {
		got = append(got, it.Code+" "+it.Path)
	}
	want := []string{"required /name", "invalid_type /tags/1", "unknown_key /aaa", "unknown_key /zzz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
