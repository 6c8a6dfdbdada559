package docview

import (
	"bytes"
	"sort"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Field is one name/value pair of a Fields snapshot.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered name -> value snapshot of a document. Order follows the
// schema's declaration order. The zero value is empty and ready to use.
type Fields struct {
	items []Field
	index map[string]int
}

// NewFields builds a Fields snapshot from pairs; later duplicates overwrite
// earlier values in place.
func NewFields(items ...Field) Fields {
	var f Fields
	for _, it := range items {
		f.set(it.Name, it.Value)
	}
	return f
}

func (f *Fields) set(name string, v any) {
	if f.index == nil {
		f.index = map[string]int{}
	}
	if i, ok := f.index[name]; ok {
		f.items[i].Value = v
		return
	}
	f.index[name] = len(f.items)
	f.items = append(f.items, Field{Name: name, Value: v})
}

func (f Fields) Len() int { return len(f.items) }

// Keys returns the field names in order.
func (f Fields) Keys() []string {
	out := make([]string, len(f.items))
	for i, it := range f.items {
		out[i] = it.Name
	}
	return out
}

// Get returns the value stored under name.
func (f Fields) Get(name string) (any, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.items[i].Value, true
}

// Items returns the pairs in order. The slice is a copy; values are shared.
func (f Fields) Items() []Field {
	out := make([]Field, len(f.items))
	copy(out, f.items)
	return out
}

// Map returns the snapshot as a plain map (order is lost).
func (f Fields) Map() map[string]any {
	out := make(map[string]any, len(f.items))
	for _, it := range f.items {
		out[it.Name] = it.Value
	}
	return out
}

// Clone deep-copies the snapshot.
func (f Fields) Clone() Fields {
	var out Fields
	for _, it := range f.items {
		out.set(it.Name, DeepCopy(it.Value))
	}
	return out
}

// sorted returns a copy ordered alphabetically by name.
func (f Fields) sorted() Fields {
	items := f.Items()
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return NewFields(items...)
}

// MarshalJSON writes the fields as a JSON object in order.
func (f Fields) MarshalJSON() ([]byte, error) {
	return f.encodeJSON(true)
}

func (f Fields) encodeJSON(escapeHTML bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, it := range f.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalJSONValue(it.Name, escapeHTML)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := marshalJSONValue(it.Value, escapeHTML)
		if err != nil {
			return nil, RebaseIssues("/"+it.Name, encodeIssue(err))
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalJSONValue(v any, escapeHTML bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := gojson.NewEncoder(&buf)
	enc.SetEscapeHTML(escapeHTML)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalYAML renders the fields as an ordered YAML mapping node.
func (f Fields) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, it := range f.items {
		var val yaml.Node
		if err := val.Encode(it.Value); err != nil {
			return nil, RebaseIssues("/"+it.Name, encodeIssue(err))
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: it.Name},
			&val,
		)
	}
	return node, nil
}

func encodeIssue(err error) error {
	if _, ok := AsIssues(err); ok {
		return err
	}
	it := IssueAt("/", CodeEncodeError, nil)
	it.Cause = err
	it.Hint = err.Error()
	return Issues{it}
}
