package app

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqfix/internal/adapters"
	"reqfix/internal/core"
	"reqfix/internal/policies"
	"reqfix/internal/types"
)

// Fix runs a whole remediation batch: partition by eligibility, group
// fixable units by manifest directory, fix each unit against the shared
// cache, and never let one unit's failure abort the rest.
func (s Service) Fix(ctx context.Context, req FixRequest) (FixResult, error) {
	scanPath := strings.TrimSpace(req.ScanPath)
	if scanPath == "" {
		return FixResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("scan file path is required")
	}
	units, err := s.ScanSource.LoadUnits(scanPath, strings.TrimSpace(req.Root))
	if err != nil {
		return FixResult{}, err
	}

	policy := policies.NewFixablePolicy(req.Patterns)
	fixable, skipped := policy.PartitionByFixable(units)

	batch := types.BatchResult{Skipped: skipped}
	cache := core.NewFixedFileCache()
	remediator := core.NewRemediatorCore()
	remediator.DryRun = req.DryRun

	for _, group := range groupByDirectory(fixable) {
		for _, unit := range group.units {
			if unit.Workspace != nil && strings.TrimSpace(unit.FileName) != "" {
				if fixer, ok := cache.Lookup(unit.Workspace.Abs(unit.FileName)); ok {
					batch.Succeeded = append(batch.Succeeded, types.UnitOutcome{
						Unit: unit,
						Changes: []types.ChangeRecord{{
							File:    unit.FileName,
							Status:  types.ChangeStatusAlreadyFixed,
							Message: fmt.Sprintf("fixed through %s", fixer),
						}},
					})
					continue
				}
			}
			fix, err := remediator.Fix(ctx, unit, cache)
			if err != nil {
				log.Ctx(ctx).Warn().Str("unit", unit.FileName).Err(err).Msg("unit failed")
				batch.Failed = append(batch.Failed, types.UnitFailure{Unit: unit, Err: err})
				continue
			}
			touched := make([]string, 0, len(fix.Touched))
			for key := range fix.Touched {
				touched = append(touched, key)
			}
			cache.Merge(touched, unit.FileName)
			// the entry path must be cached even when all changes landed
			// in a constraints file
			cache.Record(unit.Workspace.Abs(unit.FileName), unit.FileName)
			batch.Succeeded = append(batch.Succeeded, types.UnitOutcome{Unit: unit, Changes: fix.Changes})
		}
	}

	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir != "" {
		report := adapters.NewReportFileAdapter(outputDir)
		generatedAt := timeNow(s.Clock).Format(time.RFC3339)
		if err := report.WriteFixReport(batch, generatedAt); err != nil {
			return FixResult{}, err
		}
		if err := report.WriteFixChanges(batch); err != nil {
			return FixResult{}, err
		}
	}

	log.Ctx(ctx).Info().
		Int("succeeded", len(batch.Succeeded)).
		Int("failed", len(batch.Failed)).
		Int("skipped", len(batch.Skipped)).
		Bool("dry_run", req.DryRun).
		Msg("batch completed")
	return FixResult{Batch: batch, OutputDir: outputDir, DryRun: req.DryRun}, nil
}

type directoryGroup struct {
	dir   string
	units []types.FixableUnit
}

// groupByDirectory buckets units by the directory portion of their
// manifest path, in lexicographic directory order. Units keep their
// input order within a group.
func groupByDirectory(units []types.FixableUnit) []directoryGroup {
	grouped := map[string][]types.FixableUnit{}
	for _, unit := range units {
		dir := path.Dir(core.NormalizeUnitPath(unit.FileName))
		grouped[dir] = append(grouped[dir], unit)
	}
	dirs := make([]string, 0, len(grouped))
	for dir := range grouped {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	out := make([]directoryGroup, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, directoryGroup{dir: dir, units: grouped[dir]})
	}
	return out
}

func timeNow(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}
