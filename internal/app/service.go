package app

import (
	"time"

	"reqfix/internal/adapters"
	"reqfix/internal/ports"
)

type Service struct {
	ScanSource   ports.ScanSourcePort
	ReportReader ports.ReportReaderPort
	Clock        func() time.Time
}

func NewService() Service {
	return Service{
		ScanSource:   adapters.NewScanFileAdapter(),
		ReportReader: adapters.NewReportReaderAdapter(),
		Clock:        time.Now,
	}
}
