package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source identifies which scoped location a schema was resolved from.
type Source string

const (
	SourceProject Source = "project"
	SourceUser    Source = "user"
	SourcePackage Source = "package"
)

// Location is one schema search root. Locations are searched in slice order
// and the first directory containing <name>/schema.yaml wins.
type Location struct {
	Source Source
	Dir    string
}

// Resolution describes where a schema name resolved and what it shadows.
type Resolution struct {
	Name    string
	Source  Source
	Path    string
	Shadows []Shadowed
}

// Shadowed is a lower-priority copy of a schema hidden by the resolution.
type Shadowed struct {
	Source Source
	Path   string
}

// NotFoundError reports a schema name that resolved in no location.
// Available lists every schema name across all locations so callers can
// suggest alternatives.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("schema: %s not found (no schemas installed)", e.Name)
	}
	return fmt.Sprintf("schema: %s not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// aliases maps historical schema names to their canonical identity. Alias
// resolution happens before location search, so downstream components only
// ever see the canonical name.
var aliases = map[string]string{
	"sdd":      "spec-driven",
	"specdoc":  "spec-driven",
	"minimal1": "minimal",
}

// Store locates schema directories across the project-local, user-global,
// and package-bundled search roots.
type Store struct {
	locations []Location
}

// NewStore builds the search path for a project root. The user and package
// roots are optional; empty entries are skipped.
//
// Priority: project (.specflow/schemas) > user ($XDG_CONFIG_HOME/specflow/
// schemas) > package ($SPECFLOW_ROOT/schemas).
func NewStore(projectSchemasDir, userSchemasDir, packageSchemasDir string) *Store {
	store := &Store{}
	for _, loc := range []Location{
		{Source: SourceProject, Dir: projectSchemasDir},
		{Source: SourceUser, Dir: userSchemasDir},
		{Source: SourcePackage, Dir: packageSchemasDir},
	} {
		if strings.TrimSpace(loc.Dir) == "" {
			continue
		}
		loc.Dir = filepath.Clean(loc.Dir)
		store.locations = append(store.locations, loc)
	}
	return store
}

// DefaultUserSchemasDir returns the user-global schema root, honoring the
// platform config-dir convention.
func DefaultUserSchemasDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "specflow", "schemas")
}

// Canonical maps a possibly-aliased schema name to its canonical identity.
func (s *Store) Canonical(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := aliases[trimmed]; ok {
		return canonical
	}
	return trimmed
}

// Locations returns the active search roots in priority order.
func (s *Store) Locations() []Location {
	out := make([]Location, len(s.locations))
	copy(out, s.locations)
	return out
}

// Resolve returns the directory holding the named schema's definition. The
// first location containing the schema wins.
func (s *Store) Resolve(name string) (string, error) {
	res, err := s.Which(name)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Which resolves a schema name and additionally reports the winning source
// plus every lower-priority location it shadows.
func (s *Store) Which(name string) (Resolution, error) {
	canonical := s.Canonical(name)
	if canonical == "" {
		return Resolution{}, &NotFoundError{Name: name, Available: s.List()}
	}
	var res Resolution
	found := false
	for _, loc := range s.locations {
		dir := filepath.Join(loc.Dir, canonical)
		if !hasDefinition(dir) {
			continue
		}
		if !found {
			res = Resolution{Name: canonical, Source: loc.Source, Path: dir}
			found = true
			continue
		}
		res.Shadows = append(res.Shadows, Shadowed{Source: loc.Source, Path: dir})
	}
	if !found {
		return Resolution{}, &NotFoundError{Name: canonical, Available: s.List()}
	}
	return res, nil
}

// List returns the sorted union of schema names across every location.
func (s *Store) List() []string {
	seen := map[string]struct{}{}
	for _, loc := range s.locations {
		// A missing or unreadable search root just means nothing is
		// installed there.
		entries, err := os.ReadDir(loc.Dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if hasDefinition(filepath.Join(loc.Dir, entry.Name())) {
				seen[entry.Name()] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load resolves a schema name and parses its definition in one step.
func (s *Store) Load(name string) (Schema, string, error) {
	dir, err := s.Resolve(name)
	if err != nil {
		return Schema{}, "", err
	}
	parsed, err := Parse(dir)
	if err != nil {
		return Schema{}, "", err
	}
	return parsed, dir, nil
}

func hasDefinition(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, DefinitionFile))
	return err == nil && !info.IsDir()
}
