package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	specflowDir := filepath.Join(projectDir, SpecflowDir)
	if err := os.MkdirAll(specflowDir, 0o755); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, SpecflowProjectDir: specflowDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if c.DefaultSchema() != defaultSchemaName {
		t.Fatalf("expected default schema %q, got %q", defaultSchemaName, c.DefaultSchema())
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	specflowDir := filepath.Join(projectDir, SpecflowDir)
	if err := os.MkdirAll(specflowDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
schema:
  default: minimal
context: |
  Internal billing system.
rules:
  proposal:
    - Keep it under a page.
  tasks:
    - Reference tracker IDs.
    - "   "
`)
	if err := os.WriteFile(filepath.Join(specflowDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, SpecflowProjectDir: specflowDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.DefaultSchema() != "minimal" {
		t.Fatalf("wrong default schema: %s", c.DefaultSchema())
	}
	if !strings.Contains(c.Context(), "billing") {
		t.Fatalf("context not loaded: %q", c.Context())
	}
	if rules := c.RulesFor("proposal"); len(rules) != 1 {
		t.Fatalf("expected one proposal rule, got %v", rules)
	}
	// Blank rule entries are dropped during normalization.
	if rules := c.RulesFor("tasks"); len(rules) != 1 {
		t.Fatalf("expected one tasks rule after normalization, got %v", rules)
	}
	targets := c.RuleTargets()
	if len(targets) != 2 || targets[0] != "proposal" || targets[1] != "tasks" {
		t.Fatalf("unexpected rule targets %v", targets)
	}
}

func TestInitProjectDirScaffolds(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitProjectDir(projectDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, sub := range []string{"schemas", "changes", "logs"} {
		info, err := os.Stat(filepath.Join(projectDir, SpecflowDir, sub))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected %s directory: %v", sub, err)
		}
	}
	if _, err := os.Stat(filepath.Join(projectDir, SpecflowDir, "config.yaml")); err != nil {
		t.Fatalf("expected default config.yaml: %v", err)
	}
	// Re-running init must not clobber an existing config.
	path := filepath.Join(projectDir, SpecflowDir, "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nschema:\n  default: custom\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitProjectDir(projectDir); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "custom") {
		t.Fatal("re-init overwrote existing config")
	}
}

func TestSetDefaultSchemaPersists(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitProjectDir(projectDir); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetDefaultSchema("minimal"); err != nil {
		t.Fatalf("set default schema: %v", err)
	}
	reloaded, err := NewConfig(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.DefaultSchema() != "minimal" {
		t.Fatalf("expected persisted default, got %q", reloaded.DefaultSchema())
	}
	if err := c.SetDefaultSchema("  "); err == nil {
		t.Fatal("expected error for blank schema name")
	}
}
