package app

import "reqfix/internal/types"

type FixRequest struct {
	ScanPath  string
	Root      string
	OutputDir string
	Patterns  []string
	DryRun    bool
}

type FixResult struct {
	Batch     types.BatchResult
	OutputDir string
	DryRun    bool
}

type ValidateRequest struct {
	ScanPath string
	Root     string
}

type ValidateResult struct {
	UnitCount int
}

type InspectRequest struct {
	OutputDir string
}

type InspectOutcomeSummary struct {
	Status types.UnitStatus
	Count  int
	Files  []string
}

type InspectResult struct {
	GeneratedAt string
	Outcomes    []InspectOutcomeSummary
	Changes     []types.ChangeRecord
}
