package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqfix/internal/ports"
	"reqfix/internal/types"
)

// ReportFileAdapter writes the batch outcome as line-oriented report
// files under a directory: fix.report with one line per unit and
// fix.changes with one line per applied change.
type ReportFileAdapter struct {
	Dir string
}

func NewReportFileAdapter(dir string) ReportFileAdapter {
	return ReportFileAdapter{Dir: dir}
}

func (a ReportFileAdapter) WriteFixReport(result types.BatchResult, generatedAt string) error {
	path, err := a.ensurePath("fix.report")
	if err != nil {
		return err
	}
	lines := []string{fmt.Sprintf("generated_at=%s", generatedAt)}
	for _, outcome := range result.Succeeded {
		lines = append(lines, fmt.Sprintf("%s,%s,%d changes",
			types.UnitStatusSucceeded, outcome.Unit.FileName, len(outcome.Changes)))
	}
	for _, failure := range result.Failed {
		lines = append(lines, fmt.Sprintf("%s,%s,%s",
			types.UnitStatusFailed, failure.Unit.FileName, failureMessage(failure.Err)))
	}
	for _, unit := range result.Skipped {
		lines = append(lines, fmt.Sprintf("%s,%s,", types.UnitStatusSkipped, unit.FileName))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func (a ReportFileAdapter) WriteFixChanges(result types.BatchResult) error {
	path, err := a.ensurePath("fix.changes")
	if err != nil {
		return err
	}
	var lines []string
	for _, outcome := range result.Succeeded {
		for _, change := range outcome.Changes {
			lines = append(lines, fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s",
				change.File,
				change.Package,
				change.From,
				change.To,
				change.Phase,
				change.Status,
				change.Message,
			))
		}
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(err.Error(), "\n", " ")
}

func (a ReportFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.ReportPort = ReportFileAdapter{}
