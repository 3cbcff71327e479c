package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/specflow-dev/specflow/internal/change"
	"github.com/specflow-dev/specflow/internal/schema"
)

var (
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	styleReady   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	styleBlocked = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleDetail  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

func stateLabel(state change.ArtifactState) string {
	switch state {
	case change.StateDone:
		return styleDone.Render("done")
	case change.StateReady:
		return styleReady.Render("ready")
	default:
		return styleBlocked.Render("blocked")
	}
}

func renderStatus(status change.ChangeStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (schema: %s)\n", styleHeader.Render(status.Change), status.Schema)
	for _, row := range status.Artifacts {
		fmt.Fprintf(&b, "  %-24s %s", row.ID, stateLabel(row.State))
		if len(row.MissingDeps) > 0 {
			fmt.Fprintf(&b, "  %s", styleDetail.Render("missing: "+strings.Join(row.MissingDeps, ", ")))
		}
		b.WriteString("\n")
	}
	if status.Complete {
		fmt.Fprintf(&b, "%s\n", styleDone.Render("All artifacts complete."))
	} else {
		fmt.Fprintf(&b, "%s\n", styleDetail.Render("Apply gated on: "+strings.Join(status.ApplyRequires, ", ")))
	}
	return b.String()
}

func renderResolution(res schema.Resolution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (%s)\n", styleHeader.Render(res.Name), res.Path, res.Source)
	for _, shadow := range res.Shadows {
		fmt.Fprintf(&b, "  %s\n", styleDetail.Render(fmt.Sprintf("shadows %s (%s)", shadow.Path, shadow.Source)))
	}
	return b.String()
}

func renderIssues(issues []schema.Issue) string {
	var b strings.Builder
	for _, issue := range issues {
		label := styleDetail.Render(string(issue.Severity))
		if issue.Severity == schema.SeverityError {
			label = styleBlocked.Render(string(issue.Severity))
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", label, issue.Path, issue.Message)
	}
	return b.String()
}
