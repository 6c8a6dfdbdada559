package view

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	docview "github.com/reoring/docview"
)

// Registry holds named policies so views can be requested by name.
type Registry struct {
	policies map[string]*Policy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{policies: map[string]*Policy{}} }

// Register adds p. Empty and duplicate names are rejected.
func (r *Registry) Register(p *Policy) error {
	if p == nil || p.Name() == "" {
		it := docview.IssueAt("/name", docview.CodeRequired, map[string]any{"field": "name"})
		it.Hint = "policy name is empty"
		return docview.Issues{it}
	}
	if _, dup := r.policies[p.Name()]; dup {
		return docview.Issues{docview.IssueAt("/"+p.Name(), docview.CodeDuplicatePolicy, map[string]any{"policy": p.Name()})}
	}
	r.policies[p.Name()] = p
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(ps ...*Policy) *Registry {
	for _, p := range ps {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup finds a policy by name.
func (r *Registry) Lookup(name string) (*Policy, bool) {
	p, ok := r.policies[name]
	return p, ok
}

// Names lists the registered policy names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.policies))
	for k := range r.policies {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// View wraps doc with the named policy.
func (r *Registry) View(name string, doc docview.Reader) (*View, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, docview.Issues{docview.IssueAt("/"+name, docview.CodeUnknownPolicy, map[string]any{"policy": name})}
	}
	return New(p, doc), nil
}

// policyFile is the YAML form accepted by LoadPolicies:
//
//	policies:
//	  - name: Public
//	    fields: [name, body]
type policyFile struct {
	Policies []struct {
		Name   string   `yaml:"name"`
		Fields []string `yaml:"fields"`
	} `yaml:"policies"`
}

// LoadPolicies decodes a YAML policy file into a new registry.
func LoadPolicies(r io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var pf policyFile
	if err := dec.Decode(&pf); err != nil {
		if err == io.EOF {
			return NewRegistry(), nil
		}
		return nil, fmt.Errorf("view: decode policies: %w", err)
	}
	reg := NewRegistry()
	var iss docview.Issues
	for i, p := range pf.Policies {
		if err := reg.Register(NewPolicy(p.Name, p.Fields...)); err != nil {
			iss = docview.AppendIssues(iss, docview.RebaseIssues(fmt.Sprintf("/policies/%d", i), err)...)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return reg, nil
}

// LoadPoliciesFile reads a YAML policy file from disk.
func LoadPoliciesFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("view: read policies: %w", err)
	}
	return LoadPolicies(bytes.NewReader(data))
}
