package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqfix/internal/ports"
	"reqfix/internal/types"
)

type ReportReaderAdapter struct{}

func NewReportReaderAdapter() ReportReaderAdapter {
	return ReportReaderAdapter{}
}

func (a ReportReaderAdapter) ReadFixReport(path string) ([]ports.ReportSummaryLine, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("fix.report not found").
			WithCause(err)
	}
	var generatedAt string
	var summaries []ports.ReportSummaryLine
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if value, ok := strings.CutPrefix(line, "generated_at="); ok {
			generatedAt = strings.TrimSpace(value)
			continue
		}
		parts := strings.SplitN(line, ",", 3)
		if len(parts) != 3 {
			return nil, "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid fix.report format")
		}
		summaries = append(summaries, ports.ReportSummaryLine{
			Status: types.UnitStatus(strings.TrimSpace(parts[0])),
			File:   strings.TrimSpace(parts[1]),
			Detail: strings.TrimSpace(parts[2]),
		})
	}
	return summaries, generatedAt, nil
}

func (a ReportReaderAdapter) ReadFixChanges(path string) ([]types.ChangeRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("fix.changes not found").
			WithCause(err)
	}
	var records []types.ChangeRecord
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 7)
		if len(parts) != 7 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid fix.changes format")
		}
		records = append(records, types.ChangeRecord{
			File:    strings.TrimSpace(parts[0]),
			Package: strings.TrimSpace(parts[1]),
			From:    strings.TrimSpace(parts[2]),
			To:      strings.TrimSpace(parts[3]),
			Phase:   types.FixPhase(strings.TrimSpace(parts[4])),
			Status:  types.ChangeStatus(strings.TrimSpace(parts[5])),
			Message: strings.TrimSpace(parts[6]),
		})
	}
	return records, nil
}

var _ ports.ReportReaderPort = ReportReaderAdapter{}
