// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"go.yaml.in/yaml/v3"
)

type catalogParam struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Default     any    `yaml:"default,omitempty"`
}

type catalogEntry struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Params      []catalogParam `yaml:"params,omitempty"`
}

// Catalog renders the registered tools as a YAML document, one entry per
// tool in name order.
func (g *Gateway) Catalog() ([]byte, error) {
	entries := make([]catalogEntry, 0, len(g.tools))
	for _, t := range g.Tools() {
		entry := catalogEntry{Name: t.Name, Description: t.Description}
		for _, p := range t.Params {
			entry.Params = append(entry.Params, catalogParam{
				Name:        p.Name,
				Type:        p.Type,
				Description: p.Description,
				Required:    p.Required,
				Default:     p.Default,
			})
		}
		entries = append(entries, entry)
	}
	return yaml.Marshal(map[string]any{"tools": entries})
}
