package docview_test

import (
	"reflect"
	"testing"
	"time"

	docview "github.com/reoring/docview"
)

func TestResolveStructKey(t *testing.T) {
	type sample struct {
		A string `docview:"name=alpha" json:"a"`
		B string `json:"b,omitempty"`
		C string `json:",omitempty"`
		D string `json:"-"`
		E string `docview:"-" json:"e"`
		F string
	}
	rt := reflect.TypeOf(sample{})
	want := []string{"alpha", "b", "C", "-", "-", "F"}
	for i, w := range want {
		if got := docview.ResolveStructKey(rt.Field(i)); got != w {
			t.Fatalf("field %s: got %q want %q", rt.Field(i).Name, got, w)
		}
	}
}

func TestDeepCopy(t *testing.T) {
	now := time.Now()
	src := map[string]any{
		"s":     "x",
		"t":     now,
		"bytes": []byte("ab"),
		"list":  []any{map[string]any{"k": "v"}},
		"typed": []string{"a"},
		"ptr":   &[]int{1},
	}
	cp := docview.DeepCopy(src).(map[string]any)
	if !reflect.DeepEqual(cp, src) {
		t.Fatalf("copy differs: %#v", cp)
	}

	cp["bytes"].([]byte)[0] = 'z'
	cp["list"].([]any)[0].(map[string]any)["k"] = "changed"
	cp["typed"].([]string)[0] = "changed"
	(*cp["ptr"].(*[]int))[0] = 9

	if string(src["bytes"].([]byte)) != "ab" ||
		src["list"].([]any)[0].(map[string]any)["k"] != "v" ||
		src["typed"].([]string)[0] != "a" ||
		(*src["ptr"].(*[]int))[0] != 1 {
		t.Fatalf("copy aliases the source: %#v", src)
	}
	if docview.DeepCopy(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
}
