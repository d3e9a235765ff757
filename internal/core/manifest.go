package core

import (
	"strings"

	"reqfix/internal/types"
)

// opTokens is the ordered list of version operators tried while
// classifying a requirement line. Longer tokens must precede shorter
// ones to avoid false matches (e.g. "===" before "==" before ">").
var opTokens = []types.VersionOp{
	types.VersionOpArbEq,
	types.VersionOpGte,
	types.VersionOpLte,
	types.VersionOpCompat,
	types.VersionOpNe,
	types.VersionOpEq,
	types.VersionOpGt,
	types.VersionOpLt,
}

// ParseManifest tags every line of a requirements file. Raw content is
// kept verbatim per line so Render reproduces the input exactly.
func ParseManifest(name string, text string) types.ParsedManifest {
	manifest := types.ParsedManifest{Name: name}
	for _, raw := range strings.Split(text, "\n") {
		manifest.Lines = append(manifest.Lines, classifyLine(raw))
	}
	return manifest
}

func classifyLine(raw string) types.ManifestLine {
	line := types.ManifestLine{Raw: raw, Kind: types.LineKindUnknown}
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		line.Kind = types.LineKindBlank
		return line
	case strings.HasPrefix(trimmed, "#"):
		line.Kind = types.LineKindComment
		return line
	}
	if target, ok := directiveTarget(trimmed, "-r", "--requirement"); ok {
		line.Kind = types.LineKindInclude
		line.RefTarget = target
		return line
	}
	if target, ok := directiveTarget(trimmed, "-c", "--constraint"); ok {
		line.Kind = types.LineKindConstraint
		line.RefTarget = target
		return line
	}
	if strings.HasPrefix(trimmed, "-") {
		// other pip options (-e, --hash, --index-url, ...) pass through
		return line
	}
	return parseRequirement(raw, trimmed, line)
}

// directiveTarget extracts the file argument of "-r file",
// "--requirement file", or "--requirement=file" forms.
func directiveTarget(trimmed string, short string, long string) (string, bool) {
	for _, prefix := range []string{long, short} {
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		rest := trimmed[len(prefix):]
		if rest == "" {
			return "", false
		}
		if rest[0] != ' ' && rest[0] != '\t' && rest[0] != '=' {
			continue
		}
		target := strings.TrimLeft(rest, " \t=")
		if idx := strings.Index(target, "#"); idx >= 0 {
			target = target[:idx]
		}
		target = strings.TrimSpace(target)
		if target == "" {
			return "", false
		}
		return target, true
	}
	return "", false
}

func parseRequirement(raw string, trimmed string, line types.ManifestLine) types.ManifestLine {
	spec := trimmed
	if idx := strings.Index(spec, "#"); idx >= 0 {
		spec = spec[:idx]
	}
	if idx := strings.Index(spec, ";"); idx >= 0 {
		spec = spec[:idx]
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return line
	}
	for _, op := range opTokens {
		idx := strings.Index(spec, string(op))
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(spec[:idx])
		version := strings.TrimSpace(spec[idx+len(op):])
		// only the first clause of a multi-constraint spec (">=1,<2")
		// carries the comparable version
		if comma := strings.Index(version, ","); comma >= 0 {
			version = strings.TrimSpace(version[:comma])
		}
		if name == "" || version == "" {
			return line
		}
		line.Kind = types.LineKindRequirement
		line.Name = stripExtras(name)
		line.Op = op
		line.Version = version
		return line
	}
	if !validPackageName(spec) {
		return line
	}
	line.Kind = types.LineKindRequirement
	line.Name = stripExtras(spec)
	return line
}

func stripExtras(name string) string {
	if idx := strings.Index(name, "["); idx >= 0 {
		return strings.TrimSpace(name[:idx])
	}
	return name
}

func validPackageName(value string) bool {
	name := stripExtras(value)
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
