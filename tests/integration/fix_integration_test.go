package integration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqfix/internal/app"
	"reqfix/internal/types"
	"reqfix/tests/testutil"
)

const scanYaml = `units:
  - file: project-a/requirements.txt
    plan:
      upgrade:
        requests@2.25.0: 2.31.0
        urllib3@1.26.0: 1.26.18
      pin:
        certifi@*: 2023.7.22
  - file: project-b/requirements.txt
    plan:
      upgrade:
        urllib3@1.26.0: 1.26.18
        flask@2.0.0: 2.0.3
  - file: project-b/setup.py
    plan:
      upgrade:
        requests@2.25.0: 2.31.0
`

func TestFixBatchEndToEnd(t *testing.T) {
	dir := t.TempDir()

	testutil.WriteFile(t, dir, "scan.yml", scanYaml)
	testutil.WriteFile(t, dir, "project-a/requirements.txt",
		"-r ../common/base.txt\nrequests==2.25.0\n")
	testutil.WriteFile(t, dir, "project-b/requirements.txt",
		"-r ../common/base.txt\nflask==2.0.0\n")
	testutil.WriteFile(t, dir, "common/base.txt",
		"urllib3==1.26.0\n")
	testutil.WriteFile(t, dir, "project-b/setup.py", "")

	outputDir := filepath.Join(dir, "out")
	service := app.NewService()
	result, err := service.Fix(t.Context(), app.FixRequest{
		ScanPath:  filepath.Join(dir, "scan.yml"),
		OutputDir: outputDir,
	})
	require.NoError(t, err)

	require.Len(t, result.Batch.Succeeded, 2)
	require.Empty(t, result.Batch.Failed)
	require.Len(t, result.Batch.Skipped, 1)
	assert.Equal(t, "project-b/setup.py", result.Batch.Skipped[0].FileName)

	assert.Equal(t, "-r ../common/base.txt\nrequests==2.31.0\ncertifi==2023.7.22\n",
		testutil.ReadFile(t, dir, "project-a/requirements.txt"))
	assert.Equal(t, "urllib3==1.26.18\n",
		testutil.ReadFile(t, dir, "common/base.txt"))
	assert.Equal(t, "-r ../common/base.txt\nflask==2.0.3\n",
		testutil.ReadFile(t, dir, "project-b/requirements.txt"))

	var alreadyFixed []types.ChangeRecord
	for _, outcome := range result.Batch.Succeeded {
		for _, change := range outcome.Changes {
			if change.Status == types.ChangeStatusAlreadyFixed {
				alreadyFixed = append(alreadyFixed, change)
			}
		}
	}
	require.Len(t, alreadyFixed, 1)
	assert.Equal(t, "previously fixed through project-a/requirements.txt", alreadyFixed[0].Message)

	inspect, err := service.Inspect(app.InspectRequest{OutputDir: outputDir})
	require.NoError(t, err)
	assert.NotEmpty(t, inspect.GeneratedAt)
	require.Len(t, inspect.Outcomes, 3)
	assert.Equal(t, 2, inspect.Outcomes[0].Count)
	assert.Equal(t, 0, inspect.Outcomes[1].Count)
	assert.Equal(t, 1, inspect.Outcomes[2].Count)
}

func TestFixBatchDryRunLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()

	testutil.WriteFile(t, dir, "scan.yml", `units:
  - file: requirements.txt
    plan:
      upgrade:
        requests@2.25.0: 2.31.0
`)
	testutil.WriteFile(t, dir, "requirements.txt", "requests==2.25.0\n")

	service := app.NewService()
	result, err := service.Fix(t.Context(), app.FixRequest{
		ScanPath: filepath.Join(dir, "scan.yml"),
		DryRun:   true,
	})
	require.NoError(t, err)

	require.Len(t, result.Batch.Succeeded, 1)
	require.Len(t, result.Batch.Succeeded[0].Changes, 1)
	assert.Equal(t, "requests==2.25.0\n", testutil.ReadFile(t, dir, "requirements.txt"))
}

func TestValidateScanEndToEnd(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "scan.yml", `units:
  - file: requirements.txt
    plan:
      upgrade:
        requests@2.25.0: 2.31.0
`)

	service := app.NewService()
	result, err := service.Validate(t.Context(), app.ValidateRequest{
		ScanPath: filepath.Join(dir, "scan.yml"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.UnitCount)
}
