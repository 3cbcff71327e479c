package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specflow-dev/specflow/internal/config"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the .specflow directory in the current project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}
			if err := config.InitProjectDir(cwd); err != nil {
				return fmt.Errorf("initialize project: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Initialized .specflow/")
			return nil
		},
	}
}
