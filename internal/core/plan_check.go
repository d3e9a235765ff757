package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"reqfix/internal/shared"
	"reqfix/internal/types"
)

type PlanChecker struct{}

func NewPlanChecker() PlanChecker {
	return PlanChecker{}
}

// ValidateUnit checks a scanned unit's plan before a run: every key
// must carry a package name and every target must be a valid PEP 440
// version.
func (c PlanChecker) ValidateUnit(ctx context.Context, unit types.FixableUnit) error {
	assert.NotEmpty(ctx, unit.FileName, "unit file name must be set")
	if unit.Plan == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unit has no remediation plan")
	}
	if unit.Plan.Empty() {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("remediation plan for %s has no entries", unit.FileName))
	}
	if err := validateEntries(unit.Plan.Upgrade, "upgrade"); err != nil {
		return err
	}
	return validateEntries(unit.Plan.Pin, "pin")
}

func validateEntries(entries map[string]string, section string) error {
	for key, target := range entries {
		name, _ := shared.SplitPlanKey(key)
		if name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s entry has no package name: %q", section, key))
		}
		if _, err := pep440.Parse(strings.TrimSpace(target)); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s entry %s has invalid target version %q", section, key, target)).
				WithCause(err)
		}
	}
	return nil
}
