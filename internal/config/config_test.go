package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kepazon/my-sumatrapdf/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with the SumatraPDF layout
// - LoadConfig() uses defaults when no config file exists
// - LoadConfig() loads from .vcproj-sync/config.yml when present
// - LoadConfig() loads from .vcproj-sync/config.yaml when present
// - LoadConfig() merges config file with defaults
// - Environment variables override config file values and defaults
// - NewFileLoader() reads an explicit file and fails when it is missing
// - LoadConfig() returns error for malformed YAML
// - LoadConfig() returns error for invalid configuration values
// - Validate() rejects empty/absolute/escaping paths, empty layout, bad
//   mappings, bad extensions, bad exclude globs, negative debounce
// - Validate() returns multiple errors for multiple invalid fields
// - ToLayout() and Dirs() derive discovery inputs from the layout

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()

	configDir := filepath.Join(dir, ConfigDir)
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, name), []byte(content), 0644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)

	assert.Equal(t, "vs/sumatrapdf-vc2008.vcproj", cfg.Project)
	assert.Equal(t, []string{".cpp", ".c", ".h", ".rc"}, cfg.Extensions)
	assert.Len(t, cfg.Exclude, 3)
	assert.Len(t, cfg.Layout, 22)
	assert.Equal(t, DirMapping{Dir: "src/utils", Filter: []string{"baseutils"}}, cfg.Layout[1])
	assert.Equal(t, DirMapping{Dir: "ext/unarr", Filter: []string{"unarr"}}, cfg.Layout[16])
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	expected := Default()
	assert.Equal(t, expected.Project, cfg.Project)
	assert.Equal(t, expected.Layout, cfg.Layout)
	assert.Equal(t, expected.Extensions, cfg.Extensions)
	assert.Equal(t, expected.Exclude, cfg.Exclude)
	assert.Equal(t, expected.Watch.Debounce, cfg.Watch.Debounce)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
project: build/app.vcproj
layout:
  - dir: src
    filter: ["Source Files"]
  - dir: src/net
    filter: ["Source Files", "Network"]
extensions: [".cpp", ".hpp"]
exclude:
  - "src/generated_*.cpp"
watch:
  debounce: 2s
`)

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "build/app.vcproj", cfg.Project)
	assert.Equal(t, []DirMapping{
		{Dir: "src", Filter: []string{"Source Files"}},
		{Dir: "src/net", Filter: []string{"Source Files", "Network"}},
	}, cfg.Layout)
	assert.Equal(t, []string{".cpp", ".hpp"}, cfg.Extensions)
	assert.Equal(t, []string{"src/generated_*.cpp"}, cfg.Exclude)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
}

func TestLoadConfig_LoadsFromConfigYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yaml", "project: other.vcproj\n")

	cfg, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "other.vcproj", cfg.Project)
}

func TestLoadConfig_MergesConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", "extensions: [\".c\"]\n")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, []string{".c"}, cfg.Extensions)
	assert.Equal(t, defaults.Project, cfg.Project)
	assert.Equal(t, defaults.Layout, cfg.Layout)
	assert.Equal(t, defaults.Exclude, cfg.Exclude)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", "project: from-file.vcproj\n")

	t.Setenv("VCPROJ_SYNC_PROJECT", "vs/from-env.vcproj")
	t.Setenv("VCPROJ_SYNC_WATCH_DEBOUNCE", "1500ms")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "vs/from-env.vcproj", cfg.Project)
	assert.Equal(t, 1500*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoadConfig_EnvironmentVariablesOverrideDefaults(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	tempDir := t.TempDir()

	t.Setenv("VCPROJ_SYNC_EXTENSIONS", ".cpp,.h")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{".cpp", ".h"}, cfg.Extensions)
	assert.Equal(t, Default().Project, cfg.Project)
}

func TestNewFileLoader(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "custom.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("project: custom.vcproj\n"), 0644))

	cfg, err := NewFileLoader(configPath).Load()
	require.NoError(t, err)
	assert.Equal(t, "custom.vcproj", cfg.Project)

	_, err = NewFileLoader(filepath.Join(tempDir, "missing.yml")).Load()
	assert.Error(t, err)
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", "layout: [\n  - dir: src\n")

	_, err := NewLoader(tempDir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_ReturnsErrorForInvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", "extensions: [\"cpp\"]\n")

	_, err := NewLoader(tempDir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.ErrorIs(t, err, ErrInvalidExtension)
}

func TestValidate_RejectsInvalidFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty project", func(c *Config) { c.Project = " " }, ErrEmptyProject},
		{"absolute project", func(c *Config) { c.Project = "/abs/app.vcproj" }, ErrInvalidProject},
		{"backslash project", func(c *Config) { c.Project = `vs\app.vcproj` }, ErrInvalidProject},
		{"escaping project", func(c *Config) { c.Project = "../app.vcproj" }, ErrInvalidProject},
		{"empty layout", func(c *Config) { c.Layout = nil }, ErrEmptyLayout},
		{"mapping without dir", func(c *Config) { c.Layout[0].Dir = "" }, ErrInvalidMapping},
		{"mapping escaping", func(c *Config) { c.Layout[0].Dir = "src/../../x" }, ErrInvalidMapping},
		{"mapping without filter", func(c *Config) { c.Layout[0].Filter = nil }, ErrInvalidMapping},
		{"blank filter name", func(c *Config) { c.Layout[0].Filter = []string{"a", " "} }, ErrInvalidMapping},
		{"quoted filter name", func(c *Config) { c.Layout[0].Filter = []string{`a"b`} }, ErrInvalidMapping},
		{"no extensions", func(c *Config) { c.Extensions = nil }, ErrInvalidExtension},
		{"extension without dot", func(c *Config) { c.Extensions = []string{"cpp"} }, ErrInvalidExtension},
		{"bare dot", func(c *Config) { c.Extensions = []string{"."} }, ErrInvalidExtension},
		{"bad exclude", func(c *Config) { c.Exclude = []string{"src/[a-"} }, ErrInvalidExclude},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, ErrInvalidDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_ReturnsMultipleErrorsForMultipleInvalidFields(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Project = ""
	cfg.Extensions = []string{"h"}
	cfg.Watch.Debounce = -1

	err := Validate(cfg)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "validation failed")
	assert.ErrorIs(t, err, ErrEmptyProject)
	assert.ErrorIs(t, err, ErrInvalidExtension)
	assert.ErrorIs(t, err, ErrInvalidDebounce)
}

func TestToLayoutAndDirs(t *testing.T) {
	t.Parallel()

	cfg := &Config{Layout: []DirMapping{
		{Dir: "src", Filter: []string{"Source Files"}},
		{Dir: "src/utils", Filter: []string{"baseutils"}},
		{Dir: "src", Filter: []string{"Source Files", "Varia"}},
	}}

	layout := cfg.ToLayout()
	assert.Equal(t, []discovery.Mapping{
		{Dir: "src", Filter: []string{"Source Files"}},
		{Dir: "src/utils", Filter: []string{"baseutils"}},
		{Dir: "src", Filter: []string{"Source Files", "Varia"}},
	}, layout)

	// The layout owns its filter slices.
	layout[0].Filter[0] = "changed"
	assert.Equal(t, "Source Files", cfg.Layout[0].Filter[0])

	assert.Equal(t, []string{"src", "src/utils"}, cfg.Dirs())
}
