// Package tags implements the hierarchical tag scopes that gate host
// and option visibility in configuration trees. A scope is plain set
// membership; tags carry no ordering semantics.
package tags

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// KeyPrefix marks configuration mapping keys that mutate the tag scope
// of their sibling and descendant entries.
const KeyPrefix = "_tag"

// Tags is a scope: the set of active tag strings.
type Tags map[string]struct{}

// New builds a scope from plain tag strings.
func New(vals ...string) Tags {
	t := make(Tags, len(vals))
	for _, v := range vals {
		t[v] = struct{}{}
	}
	return t
}

// IsTagKey reports whether a mapping key is a scope-control key.
func IsTagKey(s string) bool {
	return strings.HasPrefix(s, KeyPrefix)
}

func (t Tags) clone() Tags {
	r := make(Tags, len(t))
	for v := range t {
		r[v] = struct{}{}
	}
	return r
}

// Contains reports membership of a single tag.
func (t Tags) Contains(v string) bool {
	_, ok := t[v]
	return ok
}

// Child derives a new scope from a scalar or sequence node: plain
// values are added, values prefixed with "!" remove the named tag.
func (t Tags) Child(node *yaml.Node) Tags {
	r := t.clone()
	for _, v := range scalarValues(node) {
		if rest, ok := strings.CutPrefix(v, "!"); ok {
			delete(r, rest)
		} else {
			r[v] = struct{}{}
		}
	}
	return r
}

// Extract walks one level of a configuration node and applies every
// "_tag*" mapping key as a scope mutation, in encounter order, so a
// later key at the same level can override an earlier one. Sequences
// fold over their children.
func (t Tags) Extract(node *yaml.Node) Tags {
	node = resolve(node)
	if node == nil {
		return t
	}
	switch node.Kind {
	case yaml.MappingNode:
		r := t
		for i := 0; i+1 < len(node.Content); i += 2 {
			k := resolve(node.Content[i])
			if k != nil && k.Kind == yaml.ScalarNode && IsTagKey(k.Value) {
				r = r.Child(node.Content[i+1])
			}
		}
		return r
	case yaml.SequenceNode:
		r := t
		for _, child := range node.Content {
			r = r.Extract(child)
		}
		return r
	}
	return t
}

// Matches reports whether the scope satisfies a query: every queried
// tag must be present. The empty query always matches.
func (t Tags) Matches(query Tags) bool {
	for q := range query {
		if !t.Contains(q) {
			return false
		}
	}
	return true
}

// scalarValues collects the string values of a scalar node or of a
// sequence of scalars.
func scalarValues(node *yaml.Node) []string {
	node = resolve(node)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		return []string{node.Value}
	case yaml.SequenceNode:
		var out []string
		for _, child := range node.Content {
			out = append(out, scalarValues(child)...)
		}
		return out
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return resolve(n.Content[0])
	}
	return n
}
