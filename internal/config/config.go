package config

import (
	"path"
	"time"
)

// Config represents the complete vcproj-sync configuration.
// It can be loaded from .vcproj-sync/config.yml with environment variable overrides.
type Config struct {
	Project    string       `yaml:"project" mapstructure:"project"`       // project file, relative to the top directory
	Layout     []DirMapping `yaml:"layout" mapstructure:"layout"`         // directory-to-filter table
	Extensions []string     `yaml:"extensions" mapstructure:"extensions"` // recognized source suffixes
	Exclude    []string     `yaml:"exclude" mapstructure:"exclude"`       // glob patterns never added
	Watch      WatchConfig  `yaml:"watch" mapstructure:"watch"`
}

// DirMapping files the sources directly inside Dir under the filter path Filter.
type DirMapping struct {
	Dir    string   `yaml:"dir" mapstructure:"dir"`       // slash-separated, relative to the top directory
	Filter []string `yaml:"filter" mapstructure:"filter"` // e.g. ["Integration DLLs", "IFilter"]
}

// WatchConfig tunes --watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"` // quiet period before re-syncing
}

// Default returns the configuration for the SumatraPDF VS2008 project.
func Default() *Config {
	return &Config{
		Project: path.Join("vs", "sumatrapdf-vc2008.vcproj"),
		Layout: []DirMapping{
			{Dir: "src", Filter: []string{"Source Files"}},
			{Dir: "src/utils", Filter: []string{"baseutils"}},
			{Dir: "src/installer", Filter: []string{"Installer"}},
			{Dir: "src/ifilter", Filter: []string{"Integration DLLs", "IFilter"}},
			{Dir: "src/previewer", Filter: []string{"Integration DLLs", "Previewer"}},
			{Dir: "src/mui", Filter: []string{"baseutils", "mui"}},
			{Dir: "src/uia", Filter: []string{"Source Files", "Automation"}},
			{Dir: "src/regress", Filter: []string{"Source Files", "Varia"}},
			{Dir: "src/wingui", Filter: []string{"baseutils", "wingui"}},
			{Dir: "mupdf/include/mupdf", Filter: []string{"mupdf", "include"}},
			{Dir: "mupdf/include/mupdf/fitz", Filter: []string{"mupdf", "include", "fitz"}},
			{Dir: "mupdf/include/mupdf/pdf", Filter: []string{"mupdf", "include", "pdf"}},
			{Dir: "mupdf/source/fitz", Filter: []string{"mupdf", "fitz"}},
			{Dir: "mupdf/source/pdf", Filter: []string{"mupdf", "pdf"}},
			{Dir: "mupdf/source/tools", Filter: []string{"mupdf", "tools"}},
			{Dir: "mupdf/source/xps", Filter: []string{"mupdf", "xps"}},
			{Dir: "ext/unarr", Filter: []string{"unarr"}},
			{Dir: "ext/unarr/common", Filter: []string{"unarr", "common"}},
			{Dir: "ext/unarr/rar", Filter: []string{"unarr", "rar"}},
			{Dir: "ext/unarr/tar", Filter: []string{"unarr", "tar"}},
			{Dir: "ext/unarr/zip", Filter: []string{"unarr", "zip"}},
			{Dir: "ext/unarr/_7z", Filter: []string{"unarr", "_7z"}},
		},
		Extensions: []string{".cpp", ".c", ".h", ".rc"},
		Exclude: []string{
			"mupdf/include/mupdf/cbz.h",
			"mupdf/include/mupdf/img.h",
			"mupdf/include/mupdf/tiff.h",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Dirs returns the directories named by the layout, in order, without duplicates.
func (c *Config) Dirs() []string {
	seen := make(map[string]bool, len(c.Layout))
	dirs := make([]string, 0, len(c.Layout))
	for _, m := range c.Layout {
		if seen[m.Dir] {
			continue
		}
		seen[m.Dir] = true
		dirs = append(dirs, m.Dir)
	}
	return dirs
}
