package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqfix/internal/ports"
	"reqfix/internal/types"
)

type fakeReportReader struct {
	summaries   []ports.ReportSummaryLine
	generatedAt string
	changes     []types.ChangeRecord
	err         error
}

func (f *fakeReportReader) ReadFixReport(string) ([]ports.ReportSummaryLine, string, error) {
	return f.summaries, f.generatedAt, f.err
}

func (f *fakeReportReader) ReadFixChanges(string) ([]types.ChangeRecord, error) {
	return f.changes, f.err
}

func TestInspectRequiresOutputDir(t *testing.T) {
	service := Service{ReportReader: &fakeReportReader{}}
	_, err := service.Inspect(InspectRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory is required")
}

func TestInspectGroupsOutcomesByStatus(t *testing.T) {
	reader := &fakeReportReader{
		generatedAt: "2024-05-01T12:00:00Z",
		summaries: []ports.ReportSummaryLine{
			{Status: types.UnitStatusSucceeded, File: "a/requirements.txt", Detail: "2 changes"},
			{Status: types.UnitStatusFailed, File: "b/requirements.txt", Detail: "no applicable fix"},
			{Status: types.UnitStatusSucceeded, File: "c/requirements.txt", Detail: "1 changes"},
			{Status: types.UnitStatusSkipped, File: "setup.py"},
		},
		changes: []types.ChangeRecord{
			{File: "requirements.txt", Package: "foo", Message: "Upgraded foo from 1.0.0 to 2.0.0"},
		},
	}
	service := Service{ReportReader: reader}

	result, err := service.Inspect(InspectRequest{OutputDir: "out"})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01T12:00:00Z", result.GeneratedAt)
	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, types.UnitStatusSucceeded, result.Outcomes[0].Status)
	assert.Equal(t, 2, result.Outcomes[0].Count)
	assert.Equal(t, []string{"a/requirements.txt", "c/requirements.txt"}, result.Outcomes[0].Files)
	assert.Equal(t, 1, result.Outcomes[1].Count)
	assert.Equal(t, 1, result.Outcomes[2].Count)
	require.Len(t, result.Changes, 1)
}
