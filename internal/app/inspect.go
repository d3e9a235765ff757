package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqfix/internal/types"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	summaries, generatedAt, err := s.ReportReader.ReadFixReport(filepath.Join(outputDir, "fix.report"))
	if err != nil {
		return InspectResult{}, err
	}
	changes, err := s.ReportReader.ReadFixChanges(filepath.Join(outputDir, "fix.changes"))
	if err != nil {
		return InspectResult{}, err
	}

	files := map[types.UnitStatus][]string{}
	for _, summary := range summaries {
		files[summary.Status] = append(files[summary.Status], summary.File)
	}
	var outcomes []InspectOutcomeSummary
	for _, status := range []types.UnitStatus{
		types.UnitStatusSucceeded,
		types.UnitStatusFailed,
		types.UnitStatusSkipped,
	} {
		outcomes = append(outcomes, InspectOutcomeSummary{
			Status: status,
			Count:  len(files[status]),
			Files:  files[status],
		})
	}
	return InspectResult{
		GeneratedAt: generatedAt,
		Outcomes:    outcomes,
		Changes:     changes,
	}, nil
}
