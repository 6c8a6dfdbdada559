package view

import (
	"slices"

	docview "github.com/reoring/docview"
)

// ReduceSchema returns the schema holding only the declarations of s whose
// names appear in whitelist, in s's declaration order. Whitelist names that s
// does not declare are ignored. s is left untouched.
func ReduceSchema(s *docview.Schema, whitelist []string) *docview.Schema {
	return s.Subset(s.Name(), func(field string) bool { return slices.Contains(whitelist, field) })
}

// reducedSchema is ReduceSchema named after the view, evaluated against the
// policy at call time.
func (v *View) reducedSchema() *docview.Schema {
	s := v.doc.Schema()
	return s.Subset(s.Name()+"."+v.policy.Name(), v.policy.Permits)
}
