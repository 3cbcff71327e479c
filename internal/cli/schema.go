package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specflow-dev/specflow/internal/schema"
)

func newSchemaCommand() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and validate workflow schemas",
	}
	schemaCmd.AddCommand(newSchemaListCommand(), newSchemaWhichCommand(), newSchemaValidateCommand())
	return schemaCmd
}

func newSchemaListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schemas across every location",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadProject()
			if err != nil {
				return err
			}
			for _, name := range store.List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newSchemaWhichCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "which <name>",
		Short: "Show which location a schema resolves from and what it shadows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadProject()
			if err != nil {
				return err
			}
			res, err := store.Which(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderResolution(res))
			return nil
		},
	}
}

func newSchemaValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <name>",
		Short: "Validate a schema definition, reporting every issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadProject()
			if err != nil {
				return err
			}
			dir, err := store.Resolve(args[0])
			if err != nil {
				return err
			}
			parsed, issues := schema.Lint(dir)
			if len(issues) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d artifacts)\n", parsed.Name, len(parsed.Artifacts))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%s", dir, renderIssues(issues))
			for _, issue := range issues {
				if issue.Severity == schema.SeverityError {
					return fmt.Errorf("schema %s is invalid", args[0])
				}
			}
			return nil
		},
	}
}
