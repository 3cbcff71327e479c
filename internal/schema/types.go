// Package schema loads and resolves workflow schema definitions. A schema
// declares the artifacts a change produces, the templates they are generated
// from, and the dependency edges between them.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// DefinitionFile is the file name every schema directory must contain.
const DefinitionFile = "schema.yaml"

// Schema is a named workflow definition: an ordered list of artifacts plus
// the apply-phase gate. Parsed once, immutable afterwards.
type Schema struct {
	Name        string      `yaml:"name"`
	Version     string      `yaml:"version,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Artifacts   []Artifact  `yaml:"artifacts"`
	Apply       ApplyConfig `yaml:"apply,omitempty"`
}

// Artifact is one document-producing step in a workflow.
type Artifact struct {
	ID          string   `yaml:"id"`
	Generates   string   `yaml:"generates"`
	Description string   `yaml:"description,omitempty"`
	Instruction string   `yaml:"instruction,omitempty"`
	Template    string   `yaml:"template"`
	Requires    []string `yaml:"requires,omitempty"`
}

// ApplyConfig gates the terminal apply phase on specific artifacts. When
// Requires is empty every artifact in the schema gates apply.
type ApplyConfig struct {
	Requires []string `yaml:"requires,omitempty"`
}

// Clone returns a deep copy of the schema.
func (s Schema) Clone() Schema {
	clone := Schema{
		Name:        s.Name,
		Version:     s.Version,
		Description: s.Description,
		Apply:       ApplyConfig{Requires: cloneStringSlice(s.Apply.Requires)},
	}
	if len(s.Artifacts) > 0 {
		clone.Artifacts = make([]Artifact, len(s.Artifacts))
		for i, art := range s.Artifacts {
			clone.Artifacts[i] = art.Clone()
		}
	}
	return clone
}

// Clone returns a deep copy of the artifact.
func (a Artifact) Clone() Artifact {
	clone := a
	clone.Requires = cloneStringSlice(a.Requires)
	return clone
}

// Validate ensures the schema is structurally self-consistent: required
// fields present, artifact IDs unique, and every referenced ID declared.
// Cycle detection is the resolver's job; see Lint for the exhaustive pass.
func (s Schema) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("schema: name is required")
	}
	if len(s.Artifacts) == 0 {
		return fmt.Errorf("schema %s: at least one artifact is required", s.Name)
	}
	seen := map[string]struct{}{}
	for idx, art := range s.Artifacts {
		if err := art.Validate(); err != nil {
			return fmt.Errorf("schema %s artifacts[%d]: %w", s.Name, idx, err)
		}
		if _, exists := seen[art.ID]; exists {
			return fmt.Errorf("schema %s: duplicate artifact id %s", s.Name, art.ID)
		}
		seen[art.ID] = struct{}{}
	}
	for _, art := range s.Artifacts {
		for _, dep := range art.Requires {
			if _, ok := seen[dep]; !ok {
				return fmt.Errorf("schema %s: artifact %s requires unknown artifact %s", s.Name, art.ID, dep)
			}
		}
	}
	for _, dep := range s.Apply.Requires {
		if _, ok := seen[dep]; !ok {
			return fmt.Errorf("schema %s: apply.requires references unknown artifact %s", s.Name, dep)
		}
	}
	return nil
}

// Validate ensures the artifact declaration is usable.
func (a Artifact) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("schema: artifact id is required")
	}
	if strings.TrimSpace(a.Generates) == "" {
		return fmt.Errorf("schema: artifact %s must declare a generates path", a.ID)
	}
	if strings.TrimSpace(a.Template) == "" {
		return fmt.Errorf("schema: artifact %s must declare a template", a.ID)
	}
	deps := append([]string{}, a.Requires...)
	sort.Strings(deps)
	for i := 1; i < len(deps); i++ {
		if deps[i] == deps[i-1] {
			return fmt.Errorf("schema: artifact %s has duplicate dependency on %s", a.ID, deps[i])
		}
	}
	return nil
}

// Normalized clones the schema, trims identifier whitespace, and validates
// the result.
func (s Schema) Normalized() (Schema, error) {
	clone := s.Clone()
	clone.Name = strings.TrimSpace(clone.Name)
	clone.Version = strings.TrimSpace(clone.Version)
	for i := range clone.Artifacts {
		clone.Artifacts[i].ID = strings.TrimSpace(clone.Artifacts[i].ID)
		for j := range clone.Artifacts[i].Requires {
			clone.Artifacts[i].Requires[j] = strings.TrimSpace(clone.Artifacts[i].Requires[j])
		}
	}
	for i := range clone.Apply.Requires {
		clone.Apply.Requires[i] = strings.TrimSpace(clone.Apply.Requires[i])
	}
	if err := clone.Validate(); err != nil {
		return Schema{}, err
	}
	return clone, nil
}

// ArtifactIDs returns the artifact identifiers in declaration order.
func (s Schema) ArtifactIDs() []string {
	ids := make([]string, 0, len(s.Artifacts))
	for _, art := range s.Artifacts {
		ids = append(ids, art.ID)
	}
	return ids
}

// Artifact returns the declaration for an artifact ID.
func (s Schema) Artifact(id string) (Artifact, bool) {
	for _, art := range s.Artifacts {
		if art.ID == id {
			return art, true
		}
	}
	return Artifact{}, false
}

// ApplyRequires returns the artifact IDs gating the apply phase. An
// unspecified gate defaults to every artifact in the schema.
func (s Schema) ApplyRequires() []string {
	if len(s.Apply.Requires) > 0 {
		return cloneStringSlice(s.Apply.Requires)
	}
	return s.ArtifactIDs()
}

func cloneStringSlice(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	clone := make([]string, len(values))
	copy(clone, values)
	return clone
}
