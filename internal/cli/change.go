package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specflow-dev/specflow/internal/change"
)

func newChangeCommand() *cobra.Command {
	changeCmd := &cobra.Command{
		Use:   "change",
		Short: "Manage changes",
	}
	changeCmd.AddCommand(newChangeNewCommand(), newChangeListCommand())
	return changeCmd
}

func newChangeNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create a change directory and record its schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadProject()
			if err != nil {
				return err
			}
			name := args[0]
			changeDir := cfg.ChangeDir(name)
			if _, err := os.Stat(changeDir); err == nil {
				return fmt.Errorf("change %s already exists", name)
			}

			schemaName := schemaOverride()
			if schemaName == "" {
				schemaName = cfg.DefaultSchema()
			}
			// Resolve before creating anything so a typo doesn't leave an
			// empty change directory behind.
			res, err := store.Which(schemaName)
			if err != nil {
				return err
			}
			if err := change.SaveMeta(changeDir, change.Meta{Schema: res.Name}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created change %s (schema: %s)\n", name, res.Name)
			return nil
		},
	}
}

func newChangeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadProject()
			if err != nil {
				return err
			}
			names, err := change.List(cfg)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
