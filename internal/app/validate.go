package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqfix/internal/core"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	scanPath := strings.TrimSpace(req.ScanPath)
	if scanPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("scan file path is required")
	}
	units, err := s.ScanSource.LoadUnits(scanPath, strings.TrimSpace(req.Root))
	if err != nil {
		return ValidateResult{}, err
	}
	checker := core.NewPlanChecker()
	for _, unit := range units {
		if err := checker.ValidateUnit(ctx, unit); err != nil {
			return ValidateResult{}, err
		}
	}
	return ValidateResult{UnitCount: len(units)}, nil
}
