package docview

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Serialize encodes the document's declared fields (wire form) in the
// requested format. Unset fields are written as null unless WithOmitNull is
// given.
func (d *Document) Serialize(ctx context.Context, opts ...EncodeOption) ([]byte, error) {
	opt := buildEncodeOpt(opts)
	f, err := d.wireFields(opt)
	if err != nil {
		return nil, err
	}
	return EncodeFields(f, opt)
}

// EncodeFields renders a Fields snapshot with the given options. Values must
// already be in wire form.
func EncodeFields(f Fields, opt EncodeOpt) ([]byte, error) {
	switch opt.Format {
	case FormatJSON:
		raw, err := f.encodeJSON(opt.EscapeHTML)
		if err != nil {
			return nil, err
		}
		if opt.Indent == "" && opt.Prefix == "" {
			return raw, nil
		}
		var buf bytes.Buffer
		if err := gojson.Indent(&buf, raw, opt.Prefix, opt.Indent); err != nil {
			return nil, encodeIssue(err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		if n := len(opt.Indent); n > 0 {
			enc.SetIndent(n)
		}
		if err := enc.Encode(f); err != nil {
			return nil, encodeIssue(err)
		}
		if err := enc.Close(); err != nil {
			return nil, encodeIssue(err)
		}
		return buf.Bytes(), nil
	}
	it := IssueAt("/", CodeEncodeError, nil)
	it.Hint = "unsupported format"
	return nil, Issues{it}
}

// ParseFields decodes a serialized object into a generic map. JSON numbers
// are kept as json.Number.
func ParseFields(data []byte, format Format) (map[string]any, error) {
	v, err := decodeAny(data, format)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		it := IssueAt("/", CodeInvalidType, nil)
		it.Hint = "expected object"
		return nil, Issues{it}
	}
	return m, nil
}

// ParseDocument decodes data into a document of schema s. Declared fields are
// parsed by their field types, required fields without defaults must be
// present, and undeclared keys follow the schema's UnknownPolicy.
func ParseDocument(ctx context.Context, s *Schema, data []byte, opts ...ParseOpt) (*Document, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	src, err := ParseFields(data, opt.Format)
	if err != nil {
		return nil, err
	}
	if opt.Format == FormatJSON && !opt.AllowDuplicateKeys {
		if dups := detectDuplicateKeys(data); len(dups) > 0 {
			if IsFailFast(ctx) {
				return nil, dups[:1]
			}
			return nil, dups
		}
	}
	return documentFromMap(ctx, s, src)
}

func documentFromMap(ctx context.Context, s *Schema, src map[string]any) (*Document, error) {
	d := New(s)
	var iss Issues
	for i, decl := range s.decls {
		if val, exists := src[decl.Name]; exists && (val != nil || !decl.Required) {
			if err := d.Set(ctx, decl.Name, val); err != nil {
				iss = AppendIssues(iss, issuesOf(err)...)
				if IsFailFast(ctx) {
					return nil, iss
				}
			}
			continue
		}
		if decl.Required && d.values[i] == nil {
			it := IssueAt("/"+decl.Name, CodeRequired, map[string]any{"field": decl.Name})
			it.Hint = "required field missing"
			iss = AppendIssues(iss, it)
			if IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	if s.unknown == UnknownStrict {
		// unknown keys in key-sorted order
		for _, k := range sortedKeys(src) {
			if s.Has(k) {
				continue
			}
			iss = AppendIssues(iss, IssueAt("/"+k, CodeUnknownKey, map[string]any{"field": k}))
			if IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return d, nil
}

func decodeAny(data []byte, format Format) (any, error) {
	switch format {
	case FormatJSON:
		dec := gojson.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, parseIssue(err)
		}
		// trailing data after the root value
		var extra any
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			it := IssueAt("/", CodeParseError, nil)
			it.Hint = "trailing data after document"
			return nil, Issues{it}
		}
		return v, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, parseIssue(err)
		}
		return yamlNormalizeValue(v), nil
	}
	it := IssueAt("/", CodeParseError, nil)
	it.Hint = "unsupported format"
	return nil, Issues{it}
}

func parseIssue(err error) error {
	it := IssueAt("/", CodeParseError, nil)
	it.Cause = err
	it.Hint = err.Error()
	return Issues{it}
}

// yamlNormalizeValue converts YAML-decoded values (which may contain map[any]any)
// into JSON-like values recursively.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}

func sortedKeys(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
