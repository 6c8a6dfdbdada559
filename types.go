package docview

import "fmt"

// UnknownPolicy controls how undeclared keys are handled when parsing a document.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject undeclared keys with an error.
	UnknownStrip                       // Drop undeclared keys.
)

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownStrip:
		return "strip"
	default:
		return "strict"
	}
}

// ParseUnknownPolicy maps "strict"/"strip" (or "") to an UnknownPolicy.
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch s {
	case "", "strict":
		return UnknownStrict, nil
	case "strip":
		return UnknownStrip, nil
	}
	return UnknownStrict, fmt.Errorf("docview: unknown policy mode %q", s)
}

// Format selects the textual encoding produced by Serialize.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// ParseFormat maps "json"/"yaml"/"yml" (or "") to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatJSON, fmt.Errorf("docview: unsupported format %q", s)
}

// EncodeOpt bundles serialization options. Callers normally build it through
// EncodeOption values; views forward those unchanged.
type EncodeOpt struct {
	Format     Format
	Prefix     string
	Indent     string
	SortKeys   bool // Alphabetical key order instead of declaration order.
	OmitNull   bool // Drop fields whose value is nil.
	EscapeHTML bool
}

// EncodeOption mutates an EncodeOpt.
type EncodeOption func(*EncodeOpt)

// WithFormat selects the output format.
func WithFormat(f Format) EncodeOption { return func(o *EncodeOpt) { o.Format = f } }

// WithIndent enables indented output. For YAML only the width of indent is used.
func WithIndent(prefix, indent string) EncodeOption {
	return func(o *EncodeOpt) {
		o.Prefix = prefix
		o.Indent = indent
	}
}

// WithSortKeys orders keys alphabetically.
func WithSortKeys() EncodeOption { return func(o *EncodeOpt) { o.SortKeys = true } }

// WithOmitNull drops nil-valued fields from the output.
func WithOmitNull() EncodeOption { return func(o *EncodeOpt) { o.OmitNull = true } }

// WithEscapeHTML toggles escaping of <, > and & in JSON strings.
func WithEscapeHTML(on bool) EncodeOption { return func(o *EncodeOpt) { o.EscapeHTML = on } }

func buildEncodeOpt(opts []EncodeOption) EncodeOpt {
	o := EncodeOpt{Format: FormatJSON}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// ParseOpt bundles document parsing options.
type ParseOpt struct {
	Format   Format
	FailFast bool // Stop at the first issue.
	// AllowDuplicateKeys turns off duplicate_key checks for JSON input. YAML
	// input always rejects duplicate keys.
	AllowDuplicateKeys bool
}
