package ports

import "reqfix/internal/types"

// ReportPort persists a batch result for the reporting layer.
type ReportPort interface {
	WriteFixReport(result types.BatchResult, generatedAt string) error
	WriteFixChanges(result types.BatchResult) error
}

// ReportSummaryLine is one unit outcome read back from a fix report.
type ReportSummaryLine struct {
	Status types.UnitStatus
	File   string
	Detail string
}

// ReportReaderPort reads previously written report files.
type ReportReaderPort interface {
	ReadFixReport(path string) ([]ReportSummaryLine, string, error)
	ReadFixChanges(path string) ([]types.ChangeRecord, error)
}
