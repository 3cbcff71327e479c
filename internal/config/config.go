// internal/config/config.go
//
// This package handles configuration and the .specflow directory structure.
// Every project that uses specflow gets a .specflow/ folder in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// SpecflowDir is the name of the directory we create in each project.
	SpecflowDir = ".specflow"

	defaultSchemaName = "spec-driven"
)

const defaultProjectConfigYAML = `# specflow project configuration
version: 1

schema:
  default: spec-driven

# Free-text context injected into every generated artifact prompt.
# context: |
#   This project is a payments service; keep PCI scope in mind.

# Per-artifact rules injected after the context block.
# rules:
#   proposal:
#     - Keep proposals under one page.
#   tasks:
#     - Reference task IDs from the tracker.
`

// SchemaConfig captures schema preferences.
type SchemaConfig struct {
	Default string `yaml:"default"`
}

// ProjectConfig models .specflow/config.yaml.
type ProjectConfig struct {
	Version int                 `yaml:"version"`
	Schema  SchemaConfig        `yaml:"schema"`
	Context string              `yaml:"context,omitempty"`
	Rules   map[string][]string `yaml:"rules,omitempty"`
}

// Config holds the runtime configuration for specflow.
type Config struct {
	// ProjectDir is the directory where the user ran `specflow` from.
	ProjectDir string

	// Root is where packaged schemas live, taken from SPECFLOW_ROOT.
	// Empty when the environment variable is unset.
	Root string

	// SpecflowProjectDir is ProjectDir/.specflow.
	SpecflowProjectDir string

	Project ProjectConfig
}

// InitProjectDir creates the .specflow directory structure in the given
// project directory.
//
// Structure created:
// .specflow/
// ├── schemas/      <- project-local schema overrides
// ├── changes/      <- one directory per change
// └── logs/         <- run logs
func InitProjectDir(projectDir string) error {
	specflowDir := filepath.Join(projectDir, SpecflowDir)
	dirs := []string{
		filepath.Join(specflowDir, "schemas"),
		filepath.Join(specflowDir, "changes"),
		filepath.Join(specflowDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(specflowDir, "config.yaml"))
}

// NewConfig creates a Config populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:         projectDir,
		Root:               strings.TrimSpace(os.Getenv("SPECFLOW_ROOT")),
		SpecflowProjectDir: filepath.Join(projectDir, SpecflowDir),
		Project:            defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SchemasDir returns the project-local schema override directory.
func (c *Config) SchemasDir() string {
	return filepath.Join(c.SpecflowProjectDir, "schemas")
}

// PackageSchemasDir returns the packaged schema root, empty when
// SPECFLOW_ROOT is unset.
func (c *Config) PackageSchemasDir() string {
	if c.Root == "" {
		return ""
	}
	return filepath.Join(c.Root, "schemas")
}

// ChangesDir returns the directory holding every change.
func (c *Config) ChangesDir() string {
	return filepath.Join(c.SpecflowProjectDir, "changes")
}

// ChangeDir returns the directory for a named change.
func (c *Config) ChangeDir(name string) string {
	return filepath.Join(c.ChangesDir(), name)
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.SpecflowProjectDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.SpecflowProjectDir, "config.yaml")
}

// DefaultSchema returns the configured default schema name.
func (c *Config) DefaultSchema() string {
	return c.Project.Schema.Default
}

// SetDefaultSchema updates the default schema name and persists the value
// back to .specflow/config.yaml.
func (c *Config) SetDefaultSchema(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("config: schema name is required")
	}
	c.Project.Schema.Default = name
	return c.saveProjectConfig()
}

// Context returns the project-level context string, empty when unset.
func (c *Config) Context() string {
	return c.Project.Context
}

// RulesFor returns the configured rules for an artifact ID.
func (c *Config) RulesFor(artifactID string) []string {
	rules := c.Project.Rules[artifactID]
	if len(rules) == 0 {
		return nil
	}
	out := make([]string, len(rules))
	copy(out, rules)
	return out
}

// RuleTargets returns every artifact ID mentioned in the rules map, sorted.
func (c *Config) RuleTargets() []string {
	targets := make([]string, 0, len(c.Project.Rules))
	for id := range c.Project.Rules {
		targets = append(targets, id)
	}
	sort.Strings(targets)
	return targets
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Schema:  SchemaConfig{Default: defaultSchemaName},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Schema.Default = strings.TrimSpace(pc.Schema.Default)
	if pc.Schema.Default == "" {
		pc.Schema.Default = defaultSchemaName
	}
	for id, rules := range pc.Rules {
		cleaned := make([]string, 0, len(rules))
		for _, rule := range rules {
			if trimmed := strings.TrimSpace(rule); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		pc.Rules[id] = cleaned
	}
}

func (pc ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if strings.TrimSpace(pc.Schema.Default) == "" {
		return fmt.Errorf("schema.default is required")
	}
	for id := range pc.Rules {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("rules: artifact id must not be empty")
		}
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.SpecflowProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure specflow dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
