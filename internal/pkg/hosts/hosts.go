package hosts

import (
	"github.com/miekg/dns"
	"gopkg.in/yaml.v3"

	"hostgen/internal/pkg/logging"
	"hostgen/internal/pkg/tags"
)

// Host is one declared host: a name plus its ordered address options.
type Host struct {
	Name string
	opts *opts
}

// ParseAll parses a host-map node: a mapping of host name to option
// value, or a sequence of such mappings. "_tag*" keys mutate the tag
// scope for the entries that follow them in the same mapping.
func ParseAll(node *yaml.Node, scope tags.Tags) []Host {
	node = resolve(node)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.SequenceNode:
		var out []Host
		for _, child := range node.Content {
			out = append(out, ParseAll(child, scope)...)
		}
		return out
	case yaml.MappingNode:
		return parseHostMap(node, scope)
	}
	logging.WithComponent("hosts").Warnf("invalid host map at line %d", node.Line)
	return nil
}

func parseHostMap(node *yaml.Node, scope tags.Tags) []Host {
	log := logging.WithComponent("hosts")
	var out []Host
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := resolve(node.Content[i])
		v := node.Content[i+1]
		if k == nil || k.Kind != yaml.ScalarNode {
			log.Warnf("invalid host name at line %d", node.Content[i].Line)
			continue
		}
		if tags.IsTagKey(k.Value) {
			scope = scope.Child(v)
			continue
		}
		if _, ok := dns.IsDomainName(k.Value); !ok {
			log.Warnf("invalid host name %q at line %d", k.Value, k.Line)
			continue
		}
		out = append(out, Host{Name: k.Value, opts: newOpts(v, scope)})
	}
	return out
}
