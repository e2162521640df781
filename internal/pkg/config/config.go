// Package config loads host configuration documents. A document is a
// YAML mapping whose keys are network selector expressions and whose
// values are host maps; both sides are interpreted by the netselect
// and hosts packages, so documents are kept as raw node trees instead
// of being decoded into a fixed schema.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a configuration file and returns its root mapping node.
func Load(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes one document and validates its top-level shape.
func Parse(path string, data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	root := &doc
	for root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config file %s: top level must map selectors to host maps", path)
	}
	return root, nil
}
