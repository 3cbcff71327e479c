// Package change tracks per-change state: which artifact outputs exist on
// disk, which schema the change was created with, and the done/ready/blocked
// summary callers present to users.
package change

import (
	"os"
	"path/filepath"

	"github.com/specflow-dev/specflow/internal/resolver"
)

// OutputChecker answers whether an artifact output exists. Completion is a
// filesystem fact; the interface exists so tests can substitute an
// in-memory fake.
type OutputChecker interface {
	Exists(path string) bool
}

// DirChecker checks output existence against the real filesystem.
type DirChecker struct{}

// Exists reports whether path names an existing file.
func (DirChecker) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Detect resolves each artifact's generates path relative to changeDir and
// returns the set whose output exists. A missing change directory simply
// yields an empty set; reporting "no such change" is the caller's job.
// Results are never cached: files may appear between calls within one
// process lifetime.
func Detect(g *resolver.Graph, changeDir string, checker OutputChecker) resolver.CompletedSet {
	if checker == nil {
		checker = DirChecker{}
	}
	completed := resolver.CompletedSet{}
	for _, art := range g.Artifacts() {
		if checker.Exists(filepath.Join(changeDir, art.Generates)) {
			completed.Add(art.ID)
		}
	}
	return completed
}
