package policies

import (
	"path"
	"path/filepath"
	"strings"

	"reqfix/internal/types"
)

// defaultPatterns lists the manifest file names this tool knows how to
// patch. Anything else is reported as skipped, never failed.
var defaultPatterns = []string{
	"requirements*.txt",
	"*requirements.txt",
	"constraints*.txt",
}

// FixablePolicy decides which scanned units are eligible for patching
// based on their manifest file name.
type FixablePolicy struct {
	Patterns []string
}

func NewFixablePolicy(patterns []string) FixablePolicy {
	cleaned := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if value := strings.TrimSpace(pattern); value != "" {
			cleaned = append(cleaned, value)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, defaultPatterns...)
	}
	return FixablePolicy{Patterns: cleaned}
}

// PartitionByFixable splits units into those this tool supports and
// those it passes through untouched. Units without a file name stay
// fixable so the orchestrator can report the precise validation error.
func (p FixablePolicy) PartitionByFixable(units []types.FixableUnit) ([]types.FixableUnit, []types.FixableUnit) {
	var fixable []types.FixableUnit
	var skipped []types.FixableUnit
	for _, unit := range units {
		if strings.TrimSpace(unit.FileName) == "" || p.matches(unit.FileName) {
			fixable = append(fixable, unit)
			continue
		}
		skipped = append(skipped, unit)
	}
	return fixable, skipped
}

func (p FixablePolicy) matches(fileName string) bool {
	base := path.Base(filepath.ToSlash(fileName))
	for _, pattern := range p.Patterns {
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
