package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specflow-dev/specflow/internal/change"
	"github.com/specflow-dev/specflow/internal/instructions"
	"github.com/specflow-dev/specflow/internal/logging"
)

func newInstructionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "instructions <change> <artifact>",
		Short: "Assemble the generation payload for one artifact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadProject()
			if err != nil {
				return err
			}
			ctx, err := change.NewContext(cfg, store, args[0], schemaOverride(), nil)
			if err != nil {
				return err
			}

			logger, logErr := logging.New(cfg.ProjectDir)
			if logErr == nil {
				defer logger.Close()
			}

			asm := instructions.Assembler{Config: cfg, Warnings: instructions.NewWarningSet()}
			payload, warnings, err := asm.Generate(ctx, args[1])
			if err != nil {
				return err
			}
			for _, warning := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
				logger.Printf("warning: %s", warning)
			}
			logger.Printf("assembled instructions for %s/%s", args[0], args[1])

			fmt.Fprint(cmd.OutOrStdout(), renderInstructions(payload))
			return nil
		},
	}
}

// renderInstructions concatenates the payload in the fixed injection order:
// context, then rules, then template.
func renderInstructions(payload instructions.ArtifactInstructions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", payload.ID)
	if payload.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", payload.Description)
	}
	fmt.Fprintf(&b, "Output: %s\n", payload.OutputPath)
	for _, dep := range payload.Dependencies {
		mark := " "
		if dep.Done {
			mark = "x"
		}
		fmt.Fprintf(&b, "Requires: [%s] %s (%s)\n", mark, dep.ID, dep.OutputPath)
	}
	if len(payload.Unlocks) > 0 {
		fmt.Fprintf(&b, "Unlocks: %s\n", strings.Join(payload.Unlocks, ", "))
	}
	b.WriteString("\n")
	if payload.Context != "" {
		fmt.Fprintf(&b, "## Project context\n\n%s\n\n", strings.TrimSpace(payload.Context))
	}
	if len(payload.Rules) > 0 {
		b.WriteString("## Rules\n\n")
		for _, rule := range payload.Rules {
			fmt.Fprintf(&b, "- %s\n", rule)
		}
		b.WriteString("\n")
	}
	if payload.Instruction != "" {
		fmt.Fprintf(&b, "## Guidance\n\n%s\n\n", strings.TrimSpace(payload.Instruction))
	}
	fmt.Fprintf(&b, "## Template\n\n%s", payload.Template)
	return b.String()
}
