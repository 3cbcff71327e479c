package change

import "path/filepath"

// ArtifactState classifies one artifact within a change.
type ArtifactState string

const (
	StateDone    ArtifactState = "done"
	StateReady   ArtifactState = "ready"
	StateBlocked ArtifactState = "blocked"
)

// ArtifactStatus is one row of a change status report.
type ArtifactStatus struct {
	ID          string
	OutputPath  string
	State       ArtifactState
	MissingDeps []string
}

// ChangeStatus summarizes a whole change: every artifact classified and
// ordered by build order, plus what gates the terminal apply phase.
type ChangeStatus struct {
	Change        string
	Schema        string
	Complete      bool
	ApplyRequires []string
	Artifacts     []ArtifactStatus
}

// Status classifies every artifact in the context as done, ready, or
// blocked. Rows follow the graph's deterministic build order so output is
// stable across runs.
func Status(ctx *Context) ChangeStatus {
	ready := map[string]struct{}{}
	for _, id := range ctx.Graph.Next(ctx.Completed) {
		ready[id] = struct{}{}
	}
	blocked := ctx.Graph.Blocked(ctx.Completed)

	status := ChangeStatus{
		Change:        ctx.Change,
		Schema:        ctx.SchemaName,
		Complete:      ctx.Graph.IsComplete(ctx.Completed),
		ApplyRequires: ctx.Schema.ApplyRequires(),
	}
	for _, id := range ctx.Graph.BuildOrder() {
		art, _ := ctx.Graph.Artifact(id)
		row := ArtifactStatus{
			ID:         id,
			OutputPath: filepath.Join(ctx.Dir, art.Generates),
		}
		switch {
		case ctx.Completed.Has(id):
			row.State = StateDone
		case hasKey(ready, id):
			row.State = StateReady
		default:
			row.State = StateBlocked
			row.MissingDeps = blocked[id]
		}
		status.Artifacts = append(status.Artifacts, row)
	}
	return status
}

func hasKey(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}
