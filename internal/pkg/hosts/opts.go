// Package hosts parses host declarations from configuration trees and
// resolves each host's ordered address options against a target
// network to produce entries.
package hosts

import (
	"net/netip"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"hostgen/internal/pkg/ipaddr"
	"hostgen/internal/pkg/logging"
	"hostgen/internal/pkg/netselect"
	"hostgen/internal/pkg/tags"
)

// optVal is one parsed address option. The option kinds are closed, so
// resolution can switch over them exhaustively.
type optVal interface {
	isOptVal()
}

type macOpt struct {
	mac ipaddr.MAC
}

// ipOpt is a literal address, possibly written in CIDR form; only the
// address part participates in resolution.
type ipOpt struct {
	addr netip.Addr
}

type intOpt struct {
	n uint64
}

// ifaceOpt marks "use this interface". With a nil selector it refers
// to the target network itself; otherwise the selector picks the
// referenced networks out of the snapshot.
type ifaceOpt struct {
	sel netselect.Selector
}

type labelKind int

const (
	labelMAC labelKind = iota
	labelV4
	labelV6
	labelIP
)

// labelOpt scopes a nested option group to one address kind or family.
type labelOpt struct {
	kind  labelKind
	group *opts
}

func (macOpt) isOptVal()   {}
func (ipOpt) isOptVal()    {}
func (intOpt) isOptVal()   {}
func (ifaceOpt) isOptVal() {}
func (labelOpt) isOptVal() {}

// opts is an ordered option list together with the tag scope it was
// declared under.
type opts struct {
	vals  []optVal
	scope tags.Tags
}

// newOpts parses an option value node. The node's own "_tag*" keys are
// folded into the scope before any nested group is parsed.
func newOpts(node *yaml.Node, scope tags.Tags) *opts {
	scope = scope.Extract(node)
	return &opts{vals: parseVals(node, scope), scope: scope}
}

func parseVals(node *yaml.Node, scope tags.Tags) []optVal {
	node = resolve(node)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.SequenceNode:
		var out []optVal
		for _, child := range node.Content {
			out = append(out, parseVals(child, scope)...)
		}
		return out
	case yaml.MappingNode:
		return parseLabels(node, scope)
	case yaml.ScalarNode:
		if v, ok := parseScalarVal(node); ok {
			return []optVal{v}
		}
		return nil
	}
	logging.WithComponent("hosts").Warnf("unable to parse option value at line %d", node.Line)
	return nil
}

func parseLabels(node *yaml.Node, scope tags.Tags) []optVal {
	var out []optVal
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := resolve(node.Content[i])
		v := node.Content[i+1]
		if k == nil || k.Kind != yaml.ScalarNode {
			logging.WithComponent("hosts").Warnf("unknown label key at line %d", node.Content[i].Line)
			continue
		}
		if tags.IsTagKey(k.Value) {
			continue // already folded into the scope by newOpts
		}
		switch strings.ToLower(k.Value) {
		case "mac":
			out = append(out, labelOpt{kind: labelMAC, group: newOpts(v, scope)})
		case "ip4", "ipv4":
			out = append(out, labelOpt{kind: labelV4, group: newOpts(v, scope)})
		case "ip6", "ipv6":
			out = append(out, labelOpt{kind: labelV6, group: newOpts(v, scope)})
		case "ip":
			out = append(out, labelOpt{kind: labelIP, group: newOpts(v, scope)})
		case "iface":
			sel, err := netselect.Parse(v)
			if err != nil {
				logging.WithComponent("hosts").WithError(err).Warnf("invalid iface selector at line %d", v.Line)
				continue
			}
			out = append(out, ifaceOpt{sel: sel})
		default:
			logging.WithComponent("hosts").Warnf("unknown label key %q at line %d", k.Value, k.Line)
		}
	}
	return out
}

// parseScalarVal tries the scalar grammars in order: integer, the
// "iface" keyword, MAC, IP or CIDR literal, then integer-as-string. A
// scalar matching none of them is dropped with a warning.
func parseScalarVal(node *yaml.Node) (optVal, bool) {
	if node.Tag == "!!int" {
		if n, err := strconv.ParseUint(node.Value, 10, 64); err == nil {
			return intOpt{n: n}, true
		}
	}
	if node.Tag == "!!null" {
		return nil, false
	}

	s := node.Value
	if strings.ToLower(s) == "iface" {
		return ifaceOpt{}, true
	}
	if m, err := ipaddr.ParseMAC(s); err == nil {
		return macOpt{mac: m}, true
	}
	if prefix, err := netip.ParsePrefix(s); err == nil {
		return ipOpt{addr: prefix.Addr().Unmap()}, true
	}
	if addr, err := netip.ParseAddr(s); err == nil {
		return ipOpt{addr: addr.Unmap()}, true
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return intOpt{n: n}, true
	}

	logging.WithComponent("hosts").Warnf("unable to parse option value %q at line %d", s, node.Line)
	return nil, false
}

// label returns the first labeled group of the wanted kind, or nil.
func (o *opts) label(kind labelKind) *opts {
	for _, v := range o.vals {
		if l, ok := v.(labelOpt); ok && l.kind == kind {
			return l.group
		}
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
