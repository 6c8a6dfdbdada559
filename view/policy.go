package view

import "slices"

// Policy is a named, ordered whitelist of top-level field names. Names that a
// document does not declare are allowed and simply never resolve.
type Policy struct {
	name   string
	fields []string
}

// NewPolicy creates a policy. Duplicate names are kept once, in first-seen order.
func NewPolicy(name string, fields ...string) *Policy {
	p := &Policy{name: name}
	p.Allow(fields...)
	return p
}

// Name returns the variant name reported in permission errors.
func (p *Policy) Name() string { return p.name }

// Fields returns a copy of the whitelist in order.
func (p *Policy) Fields() []string { return slices.Clone(p.fields) }

// Allow appends names to the whitelist. Views built from p observe the change
// on their next access. Policies are not synchronized; finish edits before
// sharing p across goroutines.
func (p *Policy) Allow(names ...string) *Policy {
	for _, n := range names {
		if n == "" || slices.Contains(p.fields, n) {
			continue
		}
		p.fields = append(p.fields, n)
	}
	return p
}

// Permits reports whether name is whitelisted.
func (p *Policy) Permits(name string) bool { return slices.Contains(p.fields, name) }
