// Package resolver builds the in-memory artifact dependency graph for a
// parsed schema and answers readiness queries against a completed set.
package resolver

import (
	"errors"
	"fmt"
	"sort"

	"github.com/specflow-dev/specflow/internal/graph"
	"github.com/specflow-dev/specflow/internal/schema"
)

// CompletedSet holds the artifact IDs whose declared output currently exists
// for a change. It is a derived snapshot, recomputed per query.
type CompletedSet map[string]struct{}

// NewCompletedSet builds a set from artifact IDs.
func NewCompletedSet(ids ...string) CompletedSet {
	set := make(CompletedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports membership.
func (c CompletedSet) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// Add records an artifact as completed.
func (c CompletedSet) Add(id string) { c[id] = struct{}{} }

// IDs returns the members sorted for deterministic output.
func (c CompletedSet) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Graph is the dependency DAG derived from one schema. Immutable after
// construction; rebuilt rather than mutated when the schema changes.
type Graph struct {
	schemaName string
	artifacts  map[string]schema.Artifact
	ordered    []string // declaration order
	buildOrder []string // topological order, declaration-order ties
	dependents map[string][]string
}

// FromSchema constructs the graph, re-validating acyclicity and edge targets
// even when the parser already checked them. A cycle or dangling reference
// fails construction; edges are never silently dropped.
func FromSchema(s schema.Schema) (*Graph, error) {
	if len(s.Artifacts) == 0 {
		return nil, fmt.Errorf("resolver: schema %s declares no artifacts", s.Name)
	}
	g := &Graph{
		schemaName: s.Name,
		artifacts:  make(map[string]schema.Artifact, len(s.Artifacts)),
		ordered:    make([]string, 0, len(s.Artifacts)),
		dependents: map[string][]string{},
	}
	nodes := make([]graph.Node, 0, len(s.Artifacts))
	for _, art := range s.Artifacts {
		if _, exists := g.artifacts[art.ID]; exists {
			return nil, fmt.Errorf("resolver: schema %s: duplicate artifact id %s", s.Name, art.ID)
		}
		g.artifacts[art.ID] = art.Clone()
		g.ordered = append(g.ordered, art.ID)
		nodes = append(nodes, graph.Node{ID: art.ID, Requires: art.Requires})
	}
	order, err := graph.Order(nodes)
	if err != nil {
		return nil, fmt.Errorf("resolver: schema %s: %w", s.Name, err)
	}
	g.buildOrder = order
	for _, art := range s.Artifacts {
		for _, dep := range art.Requires {
			g.dependents[dep] = append(g.dependents[dep], art.ID)
		}
	}
	for dep := range g.dependents {
		sort.Strings(g.dependents[dep])
	}
	return g, nil
}

// SchemaName returns the name of the schema this graph was built from.
func (g *Graph) SchemaName() string { return g.schemaName }

// Artifact returns the declaration for an artifact ID.
func (g *Graph) Artifact(id string) (schema.Artifact, bool) {
	art, ok := g.artifacts[id]
	return art, ok
}

// Artifacts returns every artifact in declaration order.
func (g *Graph) Artifacts() []schema.Artifact {
	out := make([]schema.Artifact, 0, len(g.ordered))
	for _, id := range g.ordered {
		out = append(out, g.artifacts[id])
	}
	return out
}

// BuildOrder returns a deterministic topological ordering of artifact IDs.
// Ties between simultaneously-ready artifacts are broken by declaration
// order. The order is used for stable presentation, not execution
// scheduling.
func (g *Graph) BuildOrder() []string {
	out := make([]string, len(g.buildOrder))
	copy(out, g.buildOrder)
	return out
}

// Next returns the ready frontier: artifacts not yet completed whose every
// dependency is completed. Result order follows declaration order.
func (g *Graph) Next(completed CompletedSet) []string {
	var ready []string
	for _, id := range g.ordered {
		if completed.Has(id) {
			continue
		}
		if g.satisfied(id, completed) {
			ready = append(ready, id)
		}
	}
	return ready
}

// Blocked maps every artifact that is neither completed nor ready to the
// subset of its dependencies still missing.
func (g *Graph) Blocked(completed CompletedSet) map[string][]string {
	blocked := map[string][]string{}
	for _, id := range g.ordered {
		if completed.Has(id) {
			continue
		}
		missing := g.missing(id, completed)
		if len(missing) > 0 {
			blocked[id] = missing
		}
	}
	return blocked
}

// IsComplete reports whether every artifact in the graph is completed.
func (g *Graph) IsComplete(completed CompletedSet) bool {
	for _, id := range g.ordered {
		if !completed.Has(id) {
			return false
		}
	}
	return true
}

// Unlocks returns the artifacts that directly require id, sorted
// alphabetically for deterministic output.
func (g *Graph) Unlocks(id string) []string {
	deps := g.dependents[id]
	if len(deps) == 0 {
		return nil
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

func (g *Graph) satisfied(id string, completed CompletedSet) bool {
	for _, dep := range g.artifacts[id].Requires {
		if !completed.Has(dep) {
			return false
		}
	}
	return true
}

func (g *Graph) missing(id string, completed CompletedSet) []string {
	var missing []string
	for _, dep := range g.artifacts[id].Requires {
		if !completed.Has(dep) {
			missing = append(missing, dep)
		}
	}
	return missing
}

// IsCycle reports whether err stems from a dependency cycle.
func IsCycle(err error) bool {
	return errors.Is(err, graph.ErrCycle)
}
