// Package instructions assembles the generation payload for one artifact:
// template content, resolved dependency outputs, the artifacts it unlocks,
// and any project-level context or rules to inject. The assembler never
// renders; it returns fields and leaves concatenation to the caller, whose
// injection order is fixed: context, then rules, then template.
package instructions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specflow-dev/specflow/internal/change"
	"github.com/specflow-dev/specflow/internal/config"
)

// Dependency describes one requires entry of the assembled artifact.
type Dependency struct {
	ID          string
	Done        bool
	OutputPath  string
	Description string
}

// ArtifactInstructions is the payload handed to a document-generation
// caller. A fresh value object; it carries no reference back into the graph.
type ArtifactInstructions struct {
	ID           string
	Description  string
	Instruction  string
	OutputPath   string
	Template     string
	Dependencies []Dependency
	Unlocks      []string
	Context      string
	Rules        []string
}

// ErrArtifactNotFound marks generation requests for unknown artifact IDs.
var ErrArtifactNotFound = errors.New("artifact not found")

// TemplateError reports a template that could not be loaded for an otherwise
// valid artifact. Path is the resolved location that was attempted.
type TemplateError struct {
	ArtifactID string
	Path       string
	Err        error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("instructions: load template for %s: %s: %v", e.ArtifactID, e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// Assembler composes artifact instructions for one project. Warnings lets
// the caller scope deduplication; a nil set disables deduplication.
type Assembler struct {
	Config   *config.Config
	Warnings *WarningSet
}

// Generate assembles the payload for one artifact of the change. It returns
// the warnings newly emitted during this call (already deduplicated against
// the assembler's set). Configuration drift, such as rules naming unknown
// artifacts, warns instead of failing.
func (a *Assembler) Generate(ctx *change.Context, artifactID string) (ArtifactInstructions, []string, error) {
	art, ok := ctx.Graph.Artifact(artifactID)
	if !ok {
		return ArtifactInstructions{}, nil, fmt.Errorf("instructions: %s in schema %s: %w", artifactID, ctx.SchemaName, ErrArtifactNotFound)
	}

	templatePath := filepath.Join(ctx.SchemaDir, art.Template)
	content, err := os.ReadFile(templatePath)
	if err != nil {
		abs, absErr := filepath.Abs(templatePath)
		if absErr != nil {
			abs = templatePath
		}
		return ArtifactInstructions{}, nil, &TemplateError{ArtifactID: artifactID, Path: abs, Err: err}
	}

	out := ArtifactInstructions{
		ID:          art.ID,
		Description: art.Description,
		Instruction: art.Instruction,
		OutputPath:  filepath.Join(ctx.Dir, art.Generates),
		Template:    string(content),
		Unlocks:     ctx.Graph.Unlocks(art.ID),
	}

	for _, depID := range art.Requires {
		dep := Dependency{ID: depID, Done: ctx.Completed.Has(depID)}
		if decl, found := ctx.Graph.Artifact(depID); found {
			dep.OutputPath = filepath.Join(ctx.Dir, decl.Generates)
			dep.Description = decl.Description
		} else {
			// A partially-specified schema still yields usable, if
			// degraded, instructions.
			dep.OutputPath = depID
		}
		out.Dependencies = append(out.Dependencies, dep)
	}

	var warnings []string
	if a.Config != nil {
		out.Context = a.Config.Context()
		out.Rules = a.Config.RulesFor(art.ID)
		for _, target := range a.Config.RuleTargets() {
			if _, found := ctx.Graph.Artifact(target); found {
				continue
			}
			text := fmt.Sprintf("rules reference unknown artifact %s (schema %s)", target, ctx.SchemaName)
			if a.Warnings.Emit(text) {
				warnings = append(warnings, text)
			}
		}
	}
	return out, warnings, nil
}
