package config

import (
	"slices"

	"github.com/kepazon/my-sumatrapdf/internal/discovery"
)

// ToLayout converts the directory-to-filter table into discovery mappings.
func (c *Config) ToLayout() []discovery.Mapping {
	layout := make([]discovery.Mapping, 0, len(c.Layout))
	for _, m := range c.Layout {
		layout = append(layout, discovery.Mapping{
			Dir:    m.Dir,
			Filter: slices.Clone(m.Filter),
		})
	}
	return layout
}
