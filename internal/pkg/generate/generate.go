// Package generate wires the full pipeline together: configuration
// documents and lease files in, merged rendered entries out.
package generate

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"hostgen/internal/pkg/config"
	"hostgen/internal/pkg/entry"
	"hostgen/internal/pkg/hosts"
	"hostgen/internal/pkg/lease"
	"hostgen/internal/pkg/logging"
	"hostgen/internal/pkg/netselect"
	"hostgen/internal/pkg/tags"
	"hostgen/internal/port"
)

// Options controls one generation run. Config files take precedence
// over lease files; within each list, earlier paths win ties.
type Options struct {
	ConfigPaths []string
	LeasePaths  []string
	Format      entry.Format
	QueryTags   tags.Tags
}

// Run captures an interface snapshot from src, resolves every source
// against it and writes the merged result to w. An unreadable source
// is skipped with a warning; failing to load all of them is an error,
// as is any write failure on w.
func Run(src port.InterfaceSource, opts Options, w io.Writer) error {
	networks, err := src.Networks()
	if err != nil {
		return fmt.Errorf("failed to capture interface snapshot: %w", err)
	}
	universe := netselect.Universe(networks)

	groups, loaded := collect(universe, opts)
	if loaded == 0 && len(opts.ConfigPaths)+len(opts.LeasePaths) > 0 {
		return fmt.Errorf("no input source could be read")
	}

	return entry.Write(w, opts.Format, entry.Flatten(groups))
}

// collect loads every source in priority order: one group per config
// document, then one per lease file.
func collect(universe []netselect.Network, opts Options) (groups [][]entry.Entry, loaded int) {
	for _, path := range opts.ConfigPaths {
		doc, err := config.Load(path)
		if err != nil {
			logging.WithSource("generate", path).WithError(err).Warn("skipping config source")
			continue
		}
		loaded++
		groups = append(groups, DocumentEntries(doc, universe, opts.QueryTags))
	}
	for _, path := range opts.LeasePaths {
		entries, err := lease.ParseFile(path)
		if err != nil {
			logging.WithSource("generate", path).WithError(err).Warn("skipping lease source")
			continue
		}
		loaded++
		groups = append(groups, entries)
	}
	return groups, loaded
}

// DocumentEntries evaluates one configuration document: each top-level
// key is a selector whose host map is resolved against every network
// the selector matches, in document order.
func DocumentEntries(doc *yaml.Node, universe []netselect.Network, query tags.Tags) []entry.Entry {
	resolver := hosts.NewResolver(universe, query)

	var entries []entry.Entry
	for i := 0; i+1 < len(doc.Content); i += 2 {
		selNode, hostsNode := doc.Content[i], doc.Content[i+1]

		sel, err := netselect.Parse(selNode)
		if err != nil {
			logging.WithComponent("generate").WithError(err).Warnf("skipping section at line %d", selNode.Line)
			continue
		}
		targets := netselect.Filter(universe, sel)
		if len(targets) == 0 {
			continue
		}

		for _, h := range hosts.ParseAll(hostsNode, tags.New()) {
			for _, target := range targets {
				if e, ok := resolver.Resolve(h, target); ok {
					entries = append(entries, e)
				}
			}
		}
	}
	return entries
}
