package docview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/docview/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType     = "invalid_type"
	CodeInvalidFormat   = "invalid_format"
	CodeRequired        = "required"
	CodeUnknownKey      = "unknown_key"
	CodeUnknownField    = "unknown_field"
	CodeDuplicateField  = "duplicate_field"
	CodeDuplicateKey    = "duplicate_key"
	CodeUnknownPolicy   = "unknown_policy"
	CodeDuplicatePolicy = "duplicate_policy"
	CodeParseError      = "parse_error"
	CodeEncodeError     = "encode_error"
	// View passes
	CodeNotPermitted     = "not_permitted"
	CodeSchemaDerivation = "schema_derivation"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /tags/2).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"field":"password"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /name
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IssueAt creates an Issue at the given path with a translated message.
func IssueAt(path, code string, params map[string]any) Issue {
	return Issue{Path: path, Code: code, Message: i18n.T(code, stringParams(params)), Params: params}
}

// RebaseIssues prefixes child issue paths with base ("/" maps to base itself).
func RebaseIssues(base string, err error) Issues {
	child, ok := AsIssues(err)
	if !ok {
		return Issues{Issue{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

func stringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprint(v)
	}
	return out
}

var (
	// ErrAttributeNotPermitted matches every *AttributeNotPermittedError via errors.Is.
	ErrAttributeNotPermitted = errors.New("docview: attribute not permitted")
	// ErrSchemaDerivation matches every *SchemaDerivationError via errors.Is.
	ErrSchemaDerivation = errors.New("docview: schema derivation failed")
)

// AttributeNotPermittedError reports a read of a field that the view's
// whitelist does not contain. It is returned even when the underlying
// document declares the field.
type AttributeNotPermittedError struct {
	View  string
	Field string
}

func (e *AttributeNotPermittedError) Error() string {
	return fmt.Sprintf("docview: view %q does not permit field %q", e.View, e.Field)
}

func (e *AttributeNotPermittedError) Is(target error) bool { return target == ErrAttributeNotPermitted }

// Issues renders the error in the Issue model so it can be merged with other issues.
func (e *AttributeNotPermittedError) Issues() Issues {
	it := IssueAt("/"+e.Field, CodeNotPermitted, map[string]any{"view": e.View, "field": e.Field})
	it.Cause = e
	return Issues{it}
}

// SchemaDerivationError wraps a failure while building or populating a
// filtered document. Field is empty when the failure is not tied to one field.
type SchemaDerivationError struct {
	View  string
	Field string
	Cause error
}

func (e *SchemaDerivationError) Error() string {
	msg := i18n.T(CodeSchemaDerivation, nil)
	if e.Field != "" {
		return fmt.Sprintf("docview: view %q: %s at field %q: %v", e.View, msg, e.Field, e.Cause)
	}
	return fmt.Sprintf("docview: view %q: %s: %v", e.View, msg, e.Cause)
}

func (e *SchemaDerivationError) Unwrap() error { return e.Cause }

func (e *SchemaDerivationError) Is(target error) bool { return target == ErrSchemaDerivation }
