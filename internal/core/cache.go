package core

import (
	"path"
	"path/filepath"
)

// FixedFileCache tracks which manifest files have already been
// rewritten during a batch and which unit's fix touched them first.
// It is scoped to a whole run and passed explicitly between units so
// that a file shared across projects is patched exactly once. Keys
// are the workspace-absolute paths reported by Workspace.Abs, so the
// same relative spelling under two roots stays two entries.
type FixedFileCache struct {
	fixedBy map[string]string
}

func NewFixedFileCache() *FixedFileCache {
	return &FixedFileCache{fixedBy: map[string]string{}}
}

// Lookup returns the target file of the unit that first fixed path.
func (c *FixedFileCache) Lookup(path string) (string, bool) {
	fixer, ok := c.fixedBy[NormalizeUnitPath(path)]
	return fixer, ok
}

// Record marks path as fixed by the given unit target file. The first
// writer wins; later records for the same path are ignored.
func (c *FixedFileCache) Record(path string, fixer string) {
	normalized := NormalizeUnitPath(path)
	if _, ok := c.fixedBy[normalized]; ok {
		return
	}
	c.fixedBy[normalized] = fixer
}

// Merge records every touched path against the fixing unit.
func (c *FixedFileCache) Merge(paths []string, fixer string) {
	for _, p := range paths {
		c.Record(p, fixer)
	}
}

// NormalizeUnitPath collapses equivalent relative spellings of a
// workspace path to a single cache key.
func NormalizeUnitPath(value string) string {
	return path.Clean(filepath.ToSlash(value))
}
