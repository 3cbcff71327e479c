// Package graph holds the dependency-ordering core shared by the schema
// parser and the artifact resolver. Nodes are identified by string IDs and
// edges point from an artifact to the artifacts it requires. Ordering is
// deterministic: ties are broken by declaration index, so the same input
// always yields the same order.
package graph

import (
	"fmt"
)

// Node is one vertex plus its dependency edges, in declaration order.
type Node struct {
	ID       string
	Requires []string
}

// Order returns a topological ordering of the node IDs using Kahn's
// algorithm. Nodes whose dependencies are all satisfied are emitted in
// declaration order. A dangling dependency yields a DanglingError and a
// cycle yields a CycleError naming every member.
func Order(nodes []Node) ([]string, error) {
	index := make(map[string]int, len(nodes))
	for i, node := range nodes {
		if _, exists := index[node.ID]; exists {
			return nil, fmt.Errorf("graph: duplicate node id %s", node.ID)
		}
		index[node.ID] = i
	}

	indegree := make([]int, len(nodes))
	dependents := make([][]int, len(nodes))
	for i, node := range nodes {
		for _, dep := range node.Requires {
			j, ok := index[dep]
			if !ok {
				return nil, &DanglingError{From: node.ID, Missing: dep}
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	// The ready queue is kept sorted by declaration index so the result is
	// stable across runs regardless of map iteration order.
	ready := make([]int, 0, len(nodes))
	for i := range nodes {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		order = append(order, nodes[next].ID)
		for _, dependent := range dependents[next] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = insertByIndex(ready, dependent)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, &CycleError{Members: cycleMembers(nodes, index, indegree)}
	}
	return order, nil
}

func insertByIndex(ready []int, idx int) []int {
	pos := len(ready)
	for i, existing := range ready {
		if idx < existing {
			pos = i
			break
		}
	}
	ready = append(ready, 0)
	copy(ready[pos+1:], ready[pos:])
	ready[pos] = idx
	return ready
}

// cycleMembers walks the residual subgraph left behind by Kahn's algorithm
// and extracts one cycle as a stable witness for error reporting.
func cycleMembers(nodes []Node, index map[string]int, indegree []int) []string {
	remaining := make(map[string]bool, len(nodes))
	for i, node := range nodes {
		if indegree[i] > 0 {
			remaining[node.ID] = true
		}
	}

	for _, node := range nodes {
		if !remaining[node.ID] {
			continue
		}
		seen := map[string]int{}
		path := []string{}
		current := node.ID
		for {
			if at, ok := seen[current]; ok {
				return append([]string{}, path[at:]...)
			}
			seen[current] = len(path)
			path = append(path, current)
			advanced := false
			for _, dep := range nodes[index[current]].Requires {
				if remaining[dep] {
					current = dep
					advanced = true
					break
				}
			}
			if !advanced {
				break
			}
		}
	}
	return nil
}
