// Package cli wires the specflow commands. The commands are thin: they build
// a change.Context (or schema.Store) and hand the resulting value objects to
// the render helpers. All graph and schema semantics live in the internal
// packages.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specflow-dev/specflow/internal/config"
	"github.com/specflow-dev/specflow/internal/schema"
)

// NewRootCommand builds the specflow command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "specflow",
		Short: "Spec-driven change workflows",
		Long: `Specflow manages structured change workflows: a change progresses
through a sequence of documents (proposal, specs, design, tasks) whose
dependencies and templates are declared in a pluggable schema.

State lives under .specflow/ in your project root.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("schema", "", "Schema name override (env: SPECFLOW_SCHEMA)")
	bindSettings(rootCmd)

	rootCmd.AddCommand(
		newInitCommand(),
		newChangeCommand(),
		newStatusCommand(),
		newInstructionsCommand(),
		newSchemaCommand(),
	)
	return rootCmd
}

// Execute runs the CLI and reports failures on stderr.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "specflow: %v\n", err)
		os.Exit(1)
	}
}

// loadProject builds the runtime config and schema store for the working
// directory.
func loadProject() (*config.Config, *schema.Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve working directory: %w", err)
	}
	cfg, err := config.NewConfig(cwd)
	if err != nil {
		return nil, nil, err
	}
	store := schema.NewStore(cfg.SchemasDir(), schema.DefaultUserSchemasDir(), cfg.PackageSchemasDir())
	return cfg, store, nil
}
