package instructions

import "sync"

// WarningSet deduplicates user-facing warnings by text. The caller owns the
// set and scopes it: a CLI keeps one per invocation, a long-running host one
// per request. The mutex only matters when the host runs assemblies
// concurrently (parallel tests do).
type WarningSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewWarningSet returns an empty set.
func NewWarningSet() *WarningSet {
	return &WarningSet{seen: map[string]struct{}{}}
}

// Emit records a warning and reports whether it is new. Repeated texts
// return false so callers show each warning once.
func (w *WarningSet) Emit(text string) bool {
	if w == nil {
		return true
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen == nil {
		w.seen = map[string]struct{}{}
	}
	if _, ok := w.seen[text]; ok {
		return false
	}
	w.seen[text] = struct{}{}
	return true
}
