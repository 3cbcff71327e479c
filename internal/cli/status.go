package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specflow-dev/specflow/internal/change"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <change>",
		Short: "Show which artifacts are done, ready, or blocked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadProject()
			if err != nil {
				return err
			}
			ctx, err := change.NewContext(cfg, store, args[0], schemaOverride(), nil)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderStatus(change.Status(ctx)))
			return nil
		},
	}
}
