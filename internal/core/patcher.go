package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"reqfix/internal/shared"
	"reqfix/internal/types"
)

// desiredChange is a pre-parsed plan entry ready for repeated matching
// against manifest lines.
type desiredChange struct {
	key     string
	name    string // PEP 503 normalized
	rawName string // as written in the plan key
	spec    *pep440.Specifiers
	target  string
}

type PatchResult struct {
	Manifest types.ParsedManifest
	Changes  []types.ChangeRecord

	// MatchedKeys lists the plan keys that matched an existing line,
	// whether or not the line needed rewriting.
	MatchedKeys []string
}

// PatchManifest applies desired version changes to a parsed manifest.
// In the upgrade phase only existing dependency lines are rewritten; in
// the pin phase unmatched changes are appended as new pin lines.
func PatchManifest(manifest types.ParsedManifest, changes map[string]string, phase types.FixPhase) (PatchResult, error) {
	desired, err := prepareChanges(changes)
	if err != nil {
		return PatchResult{}, err
	}
	result := PatchResult{Manifest: manifest}
	if len(desired) == 0 {
		return result, nil
	}

	matched := map[string]struct{}{}
	lines := append([]types.ManifestLine(nil), manifest.Lines...)
	for i, line := range lines {
		if line.Kind != types.LineKindRequirement {
			continue
		}
		for _, change := range desired {
			if !change.matchesLine(line) {
				continue
			}
			matched[change.key] = struct{}{}
			if line.Version == change.target {
				break
			}
			lines[i] = rewriteLineVersion(line, change.target)
			result.Changes = append(result.Changes, types.ChangeRecord{
				File:    manifest.Name,
				Package: change.name,
				From:    line.Version,
				To:      change.target,
				Phase:   phase,
				Status:  types.ChangeStatusApplied,
				Message: rewriteMessage(phase, change.name, line.Version, change.target),
			})
			break
		}
	}

	if phase == types.FixPhasePin {
		for _, change := range desired {
			if _, ok := matched[change.key]; ok {
				continue
			}
			lines = appendLine(lines, types.ManifestLine{
				Raw:     fmt.Sprintf("%s==%s", change.rawName, change.target),
				Kind:    types.LineKindRequirement,
				Name:    change.rawName,
				Op:      types.VersionOpEq,
				Version: change.target,
			})
			result.Changes = append(result.Changes, types.ChangeRecord{
				File:    manifest.Name,
				Package: change.name,
				To:      change.target,
				Phase:   types.FixPhasePin,
				Status:  types.ChangeStatusApplied,
				Message: fmt.Sprintf("Pinned %s to %s", change.name, change.target),
			})
		}
	}

	result.Manifest = types.ParsedManifest{Name: manifest.Name, Lines: lines}
	for key := range matched {
		result.MatchedKeys = append(result.MatchedKeys, key)
	}
	sort.Strings(result.MatchedKeys)
	return result, nil
}

func prepareChanges(changes map[string]string) ([]desiredChange, error) {
	keys := make([]string, 0, len(changes))
	for key := range changes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []desiredChange
	for _, key := range keys {
		target := strings.TrimSpace(changes[key])
		if _, err := pep440.Parse(target); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid target version %q for %s", target, key)).
				WithCause(err)
		}
		name, rng := shared.SplitPlanKey(key)
		if name == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid plan key: %s", key))
		}
		out = append(out, desiredChange{
			key:     key,
			name:    shared.NormalizePipName(name),
			rawName: name,
			spec:    parseRangeSpec(rng),
			target:  target,
		})
	}
	return out, nil
}

// parseRangeSpec turns the current-version part of a plan key into a
// specifier set. Bare versions become exact matches; "*" and anything
// unparsable match any version of the package.
func parseRangeSpec(rng string) *pep440.Specifiers {
	rng = strings.TrimSpace(rng)
	if rng == "" || rng == "*" {
		return nil
	}
	if _, err := pep440.Parse(rng); err == nil {
		rng = "==" + rng
	}
	spec, err := pep440.NewSpecifiers(rng)
	if err != nil {
		return nil
	}
	return &spec
}

func (c desiredChange) matchesLine(line types.ManifestLine) bool {
	if shared.NormalizePipName(line.Name) != c.name {
		return false
	}
	if line.Version == "" {
		return c.spec == nil
	}
	if c.spec == nil {
		return true
	}
	version, err := pep440.Parse(line.Version)
	if err != nil {
		return false
	}
	return c.spec.Check(version)
}

// rewriteLineVersion bumps a requirement line to an exact target
// version, preserving surrounding whitespace, extras, environment
// markers, and inline comments.
func rewriteLineVersion(line types.ManifestLine, target string) types.ManifestLine {
	raw := line.Raw
	switch line.Op {
	case types.VersionOpEq, types.VersionOpArbEq:
		opIdx := strings.Index(raw, string(line.Op))
		if opIdx >= 0 {
			searchFrom := opIdx + len(line.Op)
			if rel := strings.Index(raw[searchFrom:], line.Version); rel >= 0 {
				idx := searchFrom + rel
				line.Raw = raw[:idx] + target + raw[idx+len(line.Version):]
				line.Version = target
				return line
			}
		}
	}
	// range operators and bare names are re-pinned exactly, keeping any
	// marker or comment tail
	line.Raw = repinRaw(raw, target)
	line.Op = types.VersionOpEq
	line.Version = target
	return line
}

func repinRaw(raw string, target string) string {
	trimmed := strings.TrimLeft(raw, " \t")
	leading := raw[:len(raw)-len(trimmed)]
	tail := ""
	spec := trimmed
	if idx := strings.IndexAny(trimmed, ";#"); idx >= 0 {
		tail = " " + trimmed[idx:]
		spec = trimmed[:idx]
	}
	name := spec
	for _, op := range opTokens {
		if idx := strings.Index(spec, string(op)); idx >= 0 {
			name = spec[:idx]
			break
		}
	}
	return leading + strings.TrimSpace(name) + "==" + target + tail
}

func rewriteMessage(phase types.FixPhase, name string, from string, to string) string {
	verb := "Upgraded"
	if phase == types.FixPhasePin {
		verb = "Pinned"
	}
	if from == "" {
		return fmt.Sprintf("%s %s to %s", verb, name, to)
	}
	return fmt.Sprintf("%s %s from %s to %s", verb, name, from, to)
}

// appendLine adds a new line at the end of the file body, before the
// trailing empty line when the file ends with a newline.
func appendLine(lines []types.ManifestLine, line types.ManifestLine) []types.ManifestLine {
	if n := len(lines); n > 0 && lines[n-1].Raw == "" {
		out := append([]types.ManifestLine(nil), lines[:n-1]...)
		out = append(out, line, lines[n-1])
		return out
	}
	return append(lines, line)
}
