package core

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqfix/internal/shared"
	"reqfix/internal/types"
)

// RemediatorCore applies one fixable unit's remediation plan to its
// manifest forest: upgrades first, then leftover pins into the selected
// pin target. The shared cache guards every file against being
// rewritten twice within a batch.
type RemediatorCore struct {
	DryRun bool
}

func NewRemediatorCore() RemediatorCore {
	return RemediatorCore{}
}

// UnitFix is the outcome of fixing a single unit: the ordered change
// list plus the modified files keyed by their batch cache identity
// (the workspace's absolute path), for merging into the batch cache.
type UnitFix struct {
	Changes []types.ChangeRecord
	Touched map[string][]types.ChangeRecord
}

// fileLocation ties a batch cache key back to the file's provenance
// name and its workspace-relative path.
type fileLocation struct {
	name string
	rel  string
}

func (r RemediatorCore) Fix(ctx context.Context, unit types.FixableUnit, cache *FixedFileCache) (UnitFix, error) {
	if unit.Plan == nil {
		return UnitFix{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unit has no remediation plan")
	}
	if strings.TrimSpace(unit.FileName) == "" {
		return UnitFix{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unit has no manifest path")
	}
	if unit.Workspace == nil {
		return UnitFix{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unit has no workspace")
	}

	prov, err := ResolveProvenance(ctx, unit.Workspace, unit.FileName)
	if err != nil {
		return UnitFix{}, err
	}

	entry := filepath.ToSlash(unit.FileName)
	entryDir := path.Dir(entry)
	entryName := path.Clean(path.Base(entry))

	working := map[string]types.ParsedManifest{}
	for name, manifest := range prov.Files {
		working[name] = manifest
	}

	fix := UnitFix{Touched: map[string][]types.ChangeRecord{}}
	frozen := map[string]struct{}{}
	appliedUpgrades := map[string]struct{}{}
	locations := map[string]fileLocation{}

	// upgrade phase: rewrite existing lines across the whole provenance
	for _, name := range prov.Order {
		rel := NormalizeUnitPath(path.Join(entryDir, name))
		key := unit.Workspace.Abs(rel)
		locations[key] = fileLocation{name: name, rel: rel}
		if fixer, ok := cache.Lookup(key); ok {
			frozen[name] = struct{}{}
			fix.Changes = append(fix.Changes, types.ChangeRecord{
				File:    name,
				Phase:   types.FixPhaseUpgrade,
				Status:  types.ChangeStatusAlreadyFixed,
				Message: fmt.Sprintf("previously fixed through %s", fixer),
			})
			continue
		}
		result, err := PatchManifest(working[name], unit.Plan.Upgrade, types.FixPhaseUpgrade)
		if err != nil {
			return UnitFix{}, err
		}
		if len(result.Changes) > 0 {
			working[name] = result.Manifest
			fix.Changes = append(fix.Changes, result.Changes...)
			fix.Touched[key] = append(fix.Touched[key], result.Changes...)
		}
		for _, planKey := range result.MatchedKeys {
			keyName, _ := shared.SplitPlanKey(planKey)
			appliedUpgrades[shared.NormalizeKey(keyName, unit.Plan.Upgrade[planKey])] = struct{}{}
		}
	}

	// a pin whose package was already bumped to the same target must
	// not be written a second time
	leftover := map[string]string{}
	for key, target := range unit.Plan.Pin {
		keyName, _ := shared.SplitPlanKey(key)
		if _, ok := appliedUpgrades[shared.NormalizeKey(keyName, target)]; ok {
			continue
		}
		leftover[key] = target
	}

	if len(leftover) > 0 {
		target := selectPinTarget(unit.Workspace, entryDir, entryName, working)
		if _, ok := frozen[target.name]; !ok {
			rel := NormalizeUnitPath(path.Join(entryDir, target.name))
			key := unit.Workspace.Abs(rel)
			if fixer, ok := cache.Lookup(key); ok {
				// a constraint target outside the provenance can still
				// have been written by an earlier unit
				fix.Changes = append(fix.Changes, types.ChangeRecord{
					File:    target.name,
					Phase:   types.FixPhasePin,
					Status:  types.ChangeStatusAlreadyFixed,
					Message: fmt.Sprintf("previously fixed through %s", fixer),
				})
			} else {
				result, err := PatchManifest(target.manifest, leftover, types.FixPhasePin)
				if err != nil {
					return UnitFix{}, err
				}
				if len(result.Changes) > 0 {
					working[target.name] = result.Manifest
					locations[key] = fileLocation{name: target.name, rel: rel}
					fix.Changes = append(fix.Changes, result.Changes...)
					fix.Touched[key] = append(fix.Touched[key], result.Changes...)
				}
			}
		}
	}

	if appliedCount(fix.Changes) == 0 {
		return UnitFix{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no applicable fix")
	}

	if !r.DryRun {
		if err := r.persist(unit.Workspace, working, fix.Touched, locations); err != nil {
			return UnitFix{}, err
		}
	}

	log.Ctx(ctx).Debug().
		Str("unit", unit.FileName).
		Int("changes", appliedCount(fix.Changes)).
		Bool("dry_run", r.DryRun).
		Msg("unit fixed")
	return fix, nil
}

func (r RemediatorCore) persist(ws types.Workspace, working map[string]types.ParsedManifest, touched map[string][]types.ChangeRecord, locations map[string]fileLocation) error {
	keys := make([]string, 0, len(touched))
	for key := range touched {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		loc := locations[key]
		if err := ws.WriteFile(loc.rel, working[loc.name].Render()); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to write manifest %s", loc.name)).
				WithCause(err)
		}
	}
	return nil
}

func appliedCount(changes []types.ChangeRecord) int {
	count := 0
	for _, change := range changes {
		if change.Status == types.ChangeStatusApplied {
			count++
		}
	}
	return count
}
