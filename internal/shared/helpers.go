// Package shared provides common utility functions used across multiple
// packages in the reqfix codebase.
package shared

import (
	"fmt"
	"strings"
)

// NormalizePipName lowercases a Python package name and replaces
// underscores and dots with hyphens, following PEP 503 normalization.
func NormalizePipName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer("_", "-", ".", "-")
	return replacer.Replace(lower)
}

// SplitPlanKey splits a "<name>@<currentVersionOrRange>" plan key into
// its package name and version range parts. A key without "@" is a bare
// package name with an empty range.
func SplitPlanKey(key string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(key), "@", 2)
	if len(parts) != 2 {
		return strings.TrimSpace(parts[0]), ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// NormalizeKey builds the normalized name@version pair used when
// comparing applied upgrades against pending pins.
func NormalizeKey(name string, version string) string {
	return fmt.Sprintf("%s@%s", NormalizePipName(name), strings.TrimSpace(version))
}
