package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSchemaDir(t *testing.T, definition string, templates ...string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("# "+name+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, DefinitionFile), []byte(definition), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

const validDefinition = `
name: spec-driven
version: "1.0"
description: Spec-driven change workflow
artifacts:
  - id: proposal
    generates: proposal.md
    description: Why this change is worth making
    template: templates/proposal.md
  - id: specs
    generates: specs/spec.md
    template: templates/specs.md
    requires: [proposal]
  - id: tasks
    generates: tasks.md
    template: templates/tasks.md
    requires: [specs]
apply:
  requires: [tasks]
`

func TestParseValidSchema(t *testing.T) {
	dir := writeSchemaDir(t, validDefinition,
		"templates/proposal.md", "templates/specs.md", "templates/tasks.md")
	parsed, err := Parse(dir)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Name != "spec-driven" {
		t.Fatalf("unexpected name %q", parsed.Name)
	}
	if len(parsed.Artifacts) != 3 {
		t.Fatalf("expected 3 artifacts, got %d", len(parsed.Artifacts))
	}
	if got := parsed.ApplyRequires(); len(got) != 1 || got[0] != "tasks" {
		t.Fatalf("unexpected apply gate: %v", got)
	}
}

func TestApplyRequiresDefaultsToAllArtifacts(t *testing.T) {
	definition := strings.Replace(validDefinition, "apply:\n  requires: [tasks]\n", "", 1)
	dir := writeSchemaDir(t, definition,
		"templates/proposal.md", "templates/specs.md", "templates/tasks.md")
	parsed, err := Parse(dir)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := parsed.ApplyRequires()
	want := []string{"proposal", "specs", "tasks"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestParseMissingDefinitionFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Parse(dir)
	if err == nil {
		t.Fatal("expected error for missing definition file")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Issues) != 1 || verr.Issues[0].Path != DefinitionFile {
		t.Fatalf("unexpected issues: %+v", verr.Issues)
	}
}

func TestParseMalformedYAML(t *testing.T) {
	dir := writeSchemaDir(t, "name: [unclosed\n")
	_, err := Parse(dir)
	if err == nil {
		t.Fatal("expected malformed yaml error")
	}
	verr := err.(*ValidationError)
	if !strings.Contains(verr.Issues[0].Message, "malformed yaml") {
		t.Fatalf("unexpected issue: %+v", verr.Issues[0])
	}
}

func TestLintCollectsAllIssues(t *testing.T) {
	definition := `
name: ""
artifacts:
  - id: proposal
    generates: proposal.md
    template: templates/missing.md
  - id: proposal
    generates: dup.md
    template: templates/proposal.md
  - id: specs
    generates: specs.md
    template: templates/specs.md
    requires: [nonexistent]
apply:
  requires: [ghost]
`
	dir := writeSchemaDir(t, definition, "templates/proposal.md", "templates/specs.md")
	_, issues := Lint(dir)
	var paths []string
	for _, issue := range issues {
		paths = append(paths, issue.Path)
	}
	wantSubstrings := []string{"name", "template", ".id", ".requires", "apply.requires"}
	for _, want := range wantSubstrings {
		found := false
		for _, path := range paths {
			if strings.Contains(path, want) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected an issue at %q, got paths %v", want, paths)
		}
	}
}

func TestParseRejectsCycleNamingMembers(t *testing.T) {
	definition := `
name: cyclic
artifacts:
  - id: a
    generates: a.md
    template: templates/a.md
    requires: [b]
  - id: b
    generates: b.md
    template: templates/b.md
    requires: [a]
`
	dir := writeSchemaDir(t, definition, "templates/a.md", "templates/b.md")
	_, err := Parse(dir)
	if err == nil {
		t.Fatal("expected cycle error")
	}
	verr := err.(*ValidationError)
	var cycleIssue *Issue
	for i := range verr.Issues {
		if strings.Contains(verr.Issues[i].Message, "cycle") {
			cycleIssue = &verr.Issues[i]
		}
	}
	if cycleIssue == nil {
		t.Fatalf("expected a cycle issue, got %+v", verr.Issues)
	}
	if !strings.Contains(cycleIssue.Message, "a") || !strings.Contains(cycleIssue.Message, "b") {
		t.Fatalf("cycle issue should name both members: %s", cycleIssue.Message)
	}
}

func TestSchemaValidateRejectsDuplicateAndDangling(t *testing.T) {
	s := Schema{
		Name: "bad",
		Artifacts: []Artifact{
			{ID: "a", Generates: "a.md", Template: "t/a.md"},
			{ID: "a", Generates: "b.md", Template: "t/b.md"},
		},
	}
	if err := s.Validate(); err == nil {
		t.Fatal("expected duplicate id error")
	}
	s = Schema{
		Name: "bad",
		Artifacts: []Artifact{
			{ID: "a", Generates: "a.md", Template: "t/a.md", Requires: []string{"ghost"}},
		},
	}
	if err := s.Validate(); err == nil {
		t.Fatal("expected dangling requires error")
	}
}
