package dsl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	docview "github.com/reoring/docview"
)

// SchemaFile is the YAML form of a document schema:
//
//	name: Post
//	unknown: strict # or strip
//	fields:
//	  - name: name
//	    type: string
//	    required: true
//	  - name: tags
//	    type: list
//	    items: string
//	  - name: score
//	    type: int
//	    min: 0
//	    default: 0
type SchemaFile struct {
	Name    string      `yaml:"name"`
	Unknown string      `yaml:"unknown"`
	Fields  []FieldSpec `yaml:"fields"`
}

// FieldSpec declares one field in a SchemaFile.
type FieldSpec struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Items    string   `yaml:"items"`
	Required bool     `yaml:"required"`
	Default  any      `yaml:"default"`
	Enum     []string `yaml:"enum"`
	Min      *float64 `yaml:"min"`
	Max      *float64 `yaml:"max"`
	MaxLen   *int     `yaml:"maxLen"`
}

var (
	kindsMu sync.RWMutex
	kinds   = map[string]func() docview.FieldType{
		"string":   String,
		"bool":     Bool,
		"int":      Int,
		"number":   Number,
		"datetime": DateTime,
		"uuid":     UUID,
		"any":      Any,
	}
)

// RegisterKind makes a scalar field type available to schema files under name.
// Registering an existing name replaces it.
func RegisterKind(name string, fn func() docview.FieldType) {
	if name == "" || fn == nil {
		return
	}
	kindsMu.Lock()
	kinds[name] = fn
	kindsMu.Unlock()
}

// Kinds lists the registered scalar kinds plus "list" and "map", sorted.
func Kinds() []string {
	kindsMu.RLock()
	out := make([]string, 0, len(kinds)+2)
	for k := range kinds {
		out = append(out, k)
	}
	kindsMu.RUnlock()
	out = append(out, "list", "map")
	sort.Strings(out)
	return out
}

func scalarKind(name string) (docview.FieldType, bool) {
	kindsMu.RLock()
	fn, ok := kinds[name]
	kindsMu.RUnlock()
	if !ok {
		return nil, false
	}
	return fn(), true
}

// LoadSchema decodes a YAML SchemaFile and builds the Schema.
func LoadSchema(r io.Reader) (*docview.Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sf SchemaFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("dsl: decode schema: %w", err)
	}
	return sf.Build()
}

// LoadSchemaFile reads and builds a schema from a YAML file.
func LoadSchemaFile(path string) (*docview.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dsl: read schema: %w", err)
	}
	return LoadSchema(bytes.NewReader(data))
}

// Build converts the file form into a Schema.
func (sf SchemaFile) Build() (*docview.Schema, error) {
	if sf.Name == "" {
		it := docview.IssueAt("/name", docview.CodeRequired, map[string]any{"field": "name"})
		return nil, docview.Issues{it}
	}
	unknown, err := docview.ParseUnknownPolicy(sf.Unknown)
	if err != nil {
		return nil, err
	}
	b := Document(sf.Name)
	if unknown == docview.UnknownStrip {
		b.UnknownStrip()
	}
	var iss docview.Issues
	seen := make(map[string]struct{}, len(sf.Fields))
	for i, fs := range sf.Fields {
		if _, dup := seen[fs.Name]; dup {
			iss = docview.AppendIssues(iss, docview.IssueAt(fmt.Sprintf("/fields/%d", i), docview.CodeDuplicateField, map[string]any{"field": fs.Name}))
			continue
		}
		seen[fs.Name] = struct{}{}
		ft, err := fs.fieldType()
		if err != nil {
			iss = docview.AppendIssues(iss, docview.RebaseIssues(fmt.Sprintf("/fields/%d", i), err)...)
			continue
		}
		step := b.Field(fs.Name, ft)
		if fs.Required {
			step.Required()
		}
		if fs.Default != nil {
			step.Default(fs.Default)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return b.Build()
}

func (fs FieldSpec) fieldType() (docview.FieldType, error) {
	var ft docview.FieldType
	switch fs.Type {
	case "list", "map":
		items := fs.Items
		if items == "" {
			items = "any"
		}
		elem, ok := scalarKind(items)
		if !ok {
			return nil, unknownKind("/items", items)
		}
		if fs.Type == "list" {
			ft = List(elem)
		} else {
			ft = Map(elem)
		}
	default:
		var ok bool
		if ft, ok = scalarKind(fs.Type); !ok {
			return nil, unknownKind("/type", fs.Type)
		}
	}
	if fs.Min != nil {
		ft = Min(ft, *fs.Min)
	}
	if fs.Max != nil {
		ft = Max(ft, *fs.Max)
	}
	if fs.MaxLen != nil {
		ft = MaxLen(ft, *fs.MaxLen)
	}
	if len(fs.Enum) > 0 {
		ft = Enum(ft, fs.Enum...)
	}
	return ft, nil
}

func unknownKind(path, kind string) error {
	it := docview.IssueAt(path, docview.CodeInvalidType, map[string]any{"kind": kind})
	it.Hint = fmt.Sprintf("unknown field type %q", kind)
	return docview.Issues{it}
}
