package change

import (
	"errors"
	"fmt"
	"os"

	"github.com/specflow-dev/specflow/internal/config"
	"github.com/specflow-dev/specflow/internal/resolver"
	"github.com/specflow-dev/specflow/internal/schema"
)

// ErrNoSuchChange marks lookups for a change directory that does not exist.
var ErrNoSuchChange = errors.New("no such change")

// Context bundles everything one status or generation request needs: the
// resolved schema, its dependency graph, and a fresh completion snapshot.
// Contexts are built per operation and never cached across invocations.
type Context struct {
	Change      string
	Dir         string
	ProjectRoot string

	SchemaName string
	SchemaDir  string
	Schema     schema.Schema
	Graph      *resolver.Graph
	Completed  resolver.CompletedSet
}

// NewContext resolves the schema for a change, builds its graph, and takes a
// completion snapshot. explicitSchema overrides the change metadata and the
// project default when non-empty. checker may be nil to use the real
// filesystem.
func NewContext(cfg *config.Config, store *schema.Store, changeName, explicitSchema string, checker OutputChecker) (*Context, error) {
	if cfg == nil || store == nil {
		return nil, fmt.Errorf("change: config and schema store are required")
	}
	changeDir := cfg.ChangeDir(changeName)
	if info, err := os.Stat(changeDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("change: %s: %w", changeName, ErrNoSuchChange)
	}

	name, err := SchemaName(explicitSchema, changeDir, cfg.DefaultSchema())
	if err != nil {
		return nil, err
	}
	parsed, schemaDir, err := store.Load(name)
	if err != nil {
		return nil, err
	}
	g, err := resolver.FromSchema(parsed)
	if err != nil {
		return nil, err
	}
	return &Context{
		Change:      changeName,
		Dir:         changeDir,
		ProjectRoot: cfg.ProjectDir,
		SchemaName:  parsed.Name,
		SchemaDir:   schemaDir,
		Schema:      parsed,
		Graph:       g,
		Completed:   Detect(g, changeDir, checker),
	}, nil
}

// List returns the names of every change directory under the project.
func List(cfg *config.Config) ([]string, error) {
	entries, err := os.ReadDir(cfg.ChangesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("change: read changes dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
