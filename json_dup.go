package docview

import (
	"bytes"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

type dupFrame struct {
	object bool
	keys   map[string]struct{}
	// key is the current member name (objects) and index the next element (arrays).
	key          string
	index        int
	expectingKey bool
}

// detectDuplicateKeys walks JSON tokens and reports every object member name
// that repeats within the same object. Decoding errors are left to the caller's
// own decoder, so only duplicate_key issues are returned.
func detectDuplicateKeys(data []byte) Issues {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		iss   Issues
		stack []dupFrame
	)
	// valueDone advances the parent after a complete value.
	valueDone := func() {
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if top.object {
				top.expectingKey = true
			} else {
				top.index++
			}
		}
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			// io.EOF or a syntax error; the latter is reported by decodeAny.
			return iss
		}
		switch v := tok.(type) {
		case gojson.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{object: true, keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{})
			case '}', ']':
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
				valueDone()
			}
			continue
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := &stack[n-1]
				if _, dup := top.keys[v]; dup {
					iss = AppendIssues(iss, IssueAt(dupPath(stack, v), CodeDuplicateKey, map[string]any{"field": v}))
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
		}
		valueDone()
	}
}

// dupPath renders the JSON Pointer of key inside the innermost open object.
func dupPath(stack []dupFrame, key string) string {
	var b strings.Builder
	for _, f := range stack[:len(stack)-1] {
		b.WriteByte('/')
		if f.object {
			b.WriteString(escapePointer(f.key))
		} else {
			b.WriteString(strconv.Itoa(f.index))
		}
	}
	b.WriteByte('/')
	b.WriteString(escapePointer(key))
	return b.String()
}

func escapePointer(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}
