package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCycle marks dependency cycles so callers can match with errors.Is.
	ErrCycle = errors.New("dependency cycle")
	// ErrDangling marks edges that point at undeclared nodes.
	ErrDangling = errors.New("unknown dependency")
)

// CycleError reports a dependency cycle. Members lists the artifact IDs that
// form the cycle, in walk order.
type CycleError struct {
	Members []string
}

func (e *CycleError) Error() string {
	if len(e.Members) == 0 {
		return "graph: dependency cycle"
	}
	return fmt.Sprintf("graph: dependency cycle: %s", strings.Join(e.Members, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// DanglingError reports an edge whose target was never declared.
type DanglingError struct {
	From    string
	Missing string
}

func (e *DanglingError) Error() string {
	return fmt.Sprintf("graph: %s requires unknown artifact %s", e.From, e.Missing)
}

func (e *DanglingError) Unwrap() error { return ErrDangling }
