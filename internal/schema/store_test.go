package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func installSchema(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, DefinitionFile), []byte("name: "+name+"\nartifacts:\n  - id: proposal\n    generates: proposal.md\n    template: proposal.md\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "proposal.md"), []byte("# proposal\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestStoreResolutionPriorityAndShadows(t *testing.T) {
	projectRoot := t.TempDir()
	packageRoot := t.TempDir()
	projectDir := installSchema(t, projectRoot, "spec-driven")
	packageDir := installSchema(t, packageRoot, "spec-driven")

	store := NewStore(projectRoot, "", packageRoot)
	dir, err := store.Resolve("spec-driven")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if dir != projectDir {
		t.Fatalf("expected project copy %s to win, got %s", projectDir, dir)
	}

	res, err := store.Which("spec-driven")
	if err != nil {
		t.Fatalf("which: %v", err)
	}
	if res.Source != SourceProject {
		t.Fatalf("expected project source, got %s", res.Source)
	}
	if len(res.Shadows) != 1 || res.Shadows[0].Path != packageDir || res.Shadows[0].Source != SourcePackage {
		t.Fatalf("expected shadowed package copy, got %+v", res.Shadows)
	}
}

func TestStoreNotFoundListsAvailable(t *testing.T) {
	projectRoot := t.TempDir()
	packageRoot := t.TempDir()
	installSchema(t, projectRoot, "spec-driven")
	installSchema(t, packageRoot, "minimal")

	store := NewStore(projectRoot, "", packageRoot)
	_, err := store.Resolve("nope")
	if err == nil {
		t.Fatal("expected not found error")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nf.Name != "nope" {
		t.Fatalf("unexpected name %q", nf.Name)
	}
	if len(nf.Available) != 2 || nf.Available[0] != "minimal" || nf.Available[1] != "spec-driven" {
		t.Fatalf("unexpected available list %v", nf.Available)
	}
}

func TestStoreResolvesAliasesBeforeSearch(t *testing.T) {
	projectRoot := t.TempDir()
	installSchema(t, projectRoot, "spec-driven")

	store := NewStore(projectRoot, "", "")
	res, err := store.Which("sdd")
	if err != nil {
		t.Fatalf("which alias: %v", err)
	}
	if res.Name != "spec-driven" {
		t.Fatalf("alias should resolve to canonical name, got %q", res.Name)
	}
}

func TestStoreSkipsEmptyLocations(t *testing.T) {
	store := NewStore("", "", "")
	if len(store.Locations()) != 0 {
		t.Fatalf("expected no locations, got %v", store.Locations())
	}
	if names := store.List(); len(names) != 0 {
		t.Fatalf("expected empty list, got %v", names)
	}
}

func TestStoreLoadParsesResolvedSchema(t *testing.T) {
	projectRoot := t.TempDir()
	installSchema(t, projectRoot, "minimal")

	store := NewStore(projectRoot, "", "")
	parsed, dir, err := store.Load("minimal")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if parsed.Name != "minimal" {
		t.Fatalf("unexpected schema name %q", parsed.Name)
	}
	if dir != filepath.Join(projectRoot, "minimal") {
		t.Fatalf("unexpected schema dir %s", dir)
	}
}
