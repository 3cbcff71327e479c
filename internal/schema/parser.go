package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specflow-dev/specflow/internal/graph"
)

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation diagnostic. Path identifies the offending artifact
// or field (for example "artifacts[2].template").
type Issue struct {
	Severity Severity
	Path     string
	Message  string
}

func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Path, i.Message)
}

// ValidationError aggregates every issue found while parsing a schema
// directory. Callers in validate-all mode read Issues directly; callers that
// only need pass/fail treat it as an ordinary error.
type ValidationError struct {
	Dir    string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	count := 0
	for _, issue := range e.Issues {
		if issue.Severity == SeverityError {
			count++
		}
	}
	return fmt.Sprintf("schema: %s: %d validation error(s)", e.Dir, count)
}

// HasErrors reports whether any issue carries error severity.
func (e *ValidationError) HasErrors() bool {
	for _, issue := range e.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Parse loads and validates the schema definition in dir. On success it
// returns the fully-typed schema; on failure a *ValidationError listing
// every issue found.
func Parse(dir string) (Schema, error) {
	parsed, issues := Lint(dir)
	verr := &ValidationError{Dir: dir, Issues: issues}
	if verr.HasErrors() {
		return Schema{}, verr
	}
	return parsed, nil
}

// Lint performs every validation check in order and collects all issues
// instead of stopping at the first. The returned schema is only meaningful
// when no error-severity issue is present.
//
// Check order: file readable and well-formed, required top-level fields,
// per-artifact structure and template resolvability, referential integrity
// of requires/apply.requires, acyclicity. Cycle detection delegates to the
// same algorithm the resolver uses for build ordering.
func Lint(dir string) (Schema, []Issue) {
	path := filepath.Join(dir, DefinitionFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Schema{}, []Issue{{Severity: SeverityError, Path: DefinitionFile, Message: fmt.Sprintf("definition file %s does not exist", path)}}
		}
		return Schema{}, []Issue{{Severity: SeverityError, Path: DefinitionFile, Message: fmt.Sprintf("read %s: %v", path, err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Schema{}, []Issue{{Severity: SeverityError, Path: DefinitionFile, Message: "definition file is empty"}}
	}

	var parsed Schema
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Schema{}, []Issue{{Severity: SeverityError, Path: DefinitionFile, Message: fmt.Sprintf("malformed yaml: %v", err)}}
	}

	var issues []Issue
	if strings.TrimSpace(parsed.Name) == "" {
		issues = append(issues, Issue{Severity: SeverityError, Path: "name", Message: "name is required"})
	}
	if len(parsed.Artifacts) == 0 {
		issues = append(issues, Issue{Severity: SeverityError, Path: "artifacts", Message: "at least one artifact is required"})
		return parsed, issues
	}

	declared := map[string]struct{}{}
	for idx, art := range parsed.Artifacts {
		at := fmt.Sprintf("artifacts[%d]", idx)
		id := strings.TrimSpace(art.ID)
		if id == "" {
			issues = append(issues, Issue{Severity: SeverityError, Path: at + ".id", Message: "artifact id is required"})
			continue
		}
		at = fmt.Sprintf("artifacts[%s]", id)
		if _, exists := declared[id]; exists {
			issues = append(issues, Issue{Severity: SeverityError, Path: at + ".id", Message: fmt.Sprintf("duplicate artifact id %s", id)})
			continue
		}
		declared[id] = struct{}{}
		if strings.TrimSpace(art.Generates) == "" {
			issues = append(issues, Issue{Severity: SeverityError, Path: at + ".generates", Message: "generates path is required"})
		}
		if strings.TrimSpace(art.Template) == "" {
			issues = append(issues, Issue{Severity: SeverityError, Path: at + ".template", Message: "template is required"})
		} else if _, err := os.Stat(filepath.Join(dir, art.Template)); err != nil {
			issues = append(issues, Issue{Severity: SeverityError, Path: at + ".template", Message: fmt.Sprintf("template %s cannot be resolved", art.Template)})
		}
	}

	refsValid := len(declared) == len(parsed.Artifacts)
	for _, art := range parsed.Artifacts {
		at := fmt.Sprintf("artifacts[%s]", art.ID)
		for _, dep := range art.Requires {
			if _, ok := declared[strings.TrimSpace(dep)]; !ok {
				refsValid = false
				issues = append(issues, Issue{Severity: SeverityError, Path: at + ".requires", Message: fmt.Sprintf("requires unknown artifact %s", dep)})
			}
		}
	}
	for _, dep := range parsed.Apply.Requires {
		if _, ok := declared[strings.TrimSpace(dep)]; !ok {
			issues = append(issues, Issue{Severity: SeverityError, Path: "apply.requires", Message: fmt.Sprintf("references unknown artifact %s", dep)})
		}
	}

	// Referential failures invalidate the edges themselves, so cycle
	// detection only runs once every dependency resolves. Other issues
	// (a missing template, say) do not suppress it: validate-all mode
	// wants every diagnostic.
	if refsValid {
		nodes := make([]graph.Node, 0, len(parsed.Artifacts))
		for _, art := range parsed.Artifacts {
			requires := make([]string, 0, len(art.Requires))
			for _, dep := range art.Requires {
				requires = append(requires, strings.TrimSpace(dep))
			}
			nodes = append(nodes, graph.Node{ID: strings.TrimSpace(art.ID), Requires: requires})
		}
		if _, err := graph.Order(nodes); err != nil {
			var cycle *graph.CycleError
			if errors.As(err, &cycle) {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     "artifacts",
					Message:  fmt.Sprintf("dependency cycle: %s", strings.Join(cycle.Members, " -> ")),
				})
			} else {
				issues = append(issues, Issue{Severity: SeverityError, Path: "artifacts", Message: err.Error()})
			}
		}
	}

	if hasErrorIssues(issues) {
		return parsed, issues
	}
	normalized, err := parsed.Normalized()
	if err != nil {
		issues = append(issues, Issue{Severity: SeverityError, Path: DefinitionFile, Message: err.Error()})
		return parsed, issues
	}
	return normalized, issues
}

func hasErrorIssues(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
