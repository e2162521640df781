package netselect

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Selector is one form of the network selector grammar. Selectors are
// parsed once from a YAML node and then evaluated recursively against
// a universe of candidate networks, so the evaluator never has to
// re-inspect dynamically typed tree nodes.
type Selector interface {
	filter(universe []Network) []Network
}

// Filter narrows universe to the networks matched by s.
func Filter(universe []Network, s Selector) []Network {
	if s == nil {
		return nil
	}
	return s.filter(universe)
}

// seqSelector is the union of its children, in order. Duplicates are
// kept; the merge step downstream absorbs re-derived entries.
type seqSelector []Selector

func (s seqSelector) filter(universe []Network) []Network {
	var out []Network
	for _, child := range s {
		out = append(out, child.filter(universe)...)
	}
	return out
}

// mapSelector unions its entries; within one entry the key narrows the
// universe and the value narrows the key's result.
type mapSelector []mapSelectorEntry

type mapSelectorEntry struct {
	key Selector
	val Selector
}

func (s mapSelector) filter(universe []Network) []Network {
	var out []Network
	for _, e := range s {
		out = append(out, e.val.filter(e.key.filter(universe))...)
	}
	return out
}

// notSelector selects the set difference between the universe and its
// inner selector's match over that same universe.
type notSelector struct {
	inner Selector
}

func (s notSelector) filter(universe []Network) []Network {
	excluded := make(map[networkKey]struct{})
	for _, n := range s.inner.filter(universe) {
		excluded[n.key()] = struct{}{}
	}
	var out []Network
	for _, n := range universe {
		if _, ok := excluded[n.key()]; !ok {
			out = append(out, n)
		}
	}
	return out
}

type indexSelector int

func (s indexSelector) filter(universe []Network) []Network {
	var out []Network
	for _, n := range universe {
		if n.Iface != nil && n.Iface.Index == int(s) {
			out = append(out, n)
		}
	}
	return out
}

// familySelector matches networks of one address family, sentinels
// included.
type familySelector bool // true selects v4

func (s familySelector) filter(universe []Network) []Network {
	var out []Network
	for _, n := range universe {
		if n.Is4() == bool(s) {
			out = append(out, n)
		}
	}
	return out
}

// cidrSelector tests containment of the target's own assigned address,
// not subnet-prefix equality.
type cidrSelector netip.Prefix

func (s cidrSelector) filter(universe []Network) []Network {
	var out []Network
	for _, n := range universe {
		if netip.Prefix(s).Contains(n.Addr) {
			out = append(out, n)
		}
	}
	return out
}

type globSelector struct {
	pattern string
	matcher glob.Glob
}

func (s globSelector) filter(universe []Network) []Network {
	var out []Network
	for _, n := range universe {
		if n.Iface != nil && s.matcher.Match(n.Iface.Name) {
			out = append(out, n)
		}
	}
	return out
}

type nameSelector string

func (s nameSelector) filter(universe []Network) []Network {
	var out []Network
	for _, n := range universe {
		if n.Iface != nil && n.Iface.Name == string(s) {
			out = append(out, n)
		}
	}
	return out
}

// nullSelector matches only the two sentinel networks.
type nullSelector struct{}

func (nullSelector) filter(universe []Network) []Network {
	var out []Network
	for _, n := range universe {
		if n.IsSentinel() {
			out = append(out, n)
		}
	}
	return out
}

// Parse builds a Selector from a YAML node.
func Parse(node *yaml.Node) (Selector, error) {
	node = resolve(node)
	if node == nil {
		return nil, fmt.Errorf("empty selector node")
	}
	switch node.Kind {
	case yaml.SequenceNode:
		seq := make(seqSelector, 0, len(node.Content))
		for _, child := range node.Content {
			s, err := Parse(child)
			if err != nil {
				return nil, err
			}
			seq = append(seq, s)
		}
		return seq, nil
	case yaml.MappingNode:
		m := make(mapSelector, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := Parse(node.Content[i])
			if err != nil {
				return nil, err
			}
			val, err := Parse(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m = append(m, mapSelectorEntry{key: key, val: val})
		}
		return m, nil
	case yaml.ScalarNode:
		return parseScalar(node)
	}
	return nil, fmt.Errorf("unsupported selector node kind %v at line %d", node.Kind, node.Line)
}

// ParseString parses a selector given as a plain YAML snippet, used by
// command line arguments.
func ParseString(s string) (Selector, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(s), &node); err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", s, err)
	}
	return Parse(&node)
}

func parseScalar(node *yaml.Node) (Selector, error) {
	switch node.Tag {
	case "!!null":
		return nullSelector{}, nil
	case "!!int":
		i, err := strconv.Atoi(node.Value)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("invalid interface index %q at line %d", node.Value, node.Line)
		}
		return indexSelector(i), nil
	}
	return parseStringScalar(node.Value)
}

func parseStringScalar(s string) (Selector, error) {
	if rest, ok := strings.CutPrefix(s, "!"); ok {
		inner, err := parseStringScalar(rest)
		if err != nil {
			return nil, err
		}
		return notSelector{inner: inner}, nil
	}

	switch strings.ToLower(s) {
	case "v4", "ip4", "ipv4":
		return familySelector(true), nil
	case "v6", "ip6", "ipv6":
		return familySelector(false), nil
	}

	if prefix, err := netip.ParsePrefix(s); err == nil {
		return cidrSelector(prefix), nil
	}
	if addr, err := netip.ParseAddr(s); err == nil {
		return cidrSelector(netip.PrefixFrom(addr, addr.BitLen())), nil
	}

	if matcher, err := glob.Compile(s); err == nil {
		return globSelector{pattern: s, matcher: matcher}, nil
	}

	return nameSelector(s), nil
}

// resolve follows alias nodes and unwraps document nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return resolve(n.Content[0])
	}
	return n
}
