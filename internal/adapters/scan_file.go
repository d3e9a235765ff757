package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"reqfix/internal/ports"
	"reqfix/internal/types"
)

type scanFile struct {
	Root  string     `yaml:"root,omitempty"`
	Units []scanUnit `yaml:"units"`
}

type scanUnit struct {
	File string                 `yaml:"file"`
	Root string                 `yaml:"root,omitempty"`
	Plan *types.RemediationPlan `yaml:"plan,omitempty"`
}

// ScanFileAdapter loads fixable units from a scan yaml produced by an
// upstream scanner. Each unit gets a file workspace anchored at the
// scan-level root, a per-unit root, or the scan file's own directory.
type ScanFileAdapter struct{}

func NewScanFileAdapter() ScanFileAdapter {
	return ScanFileAdapter{}
}

func (a ScanFileAdapter) LoadUnits(path string, rootOverride string) ([]types.FixableUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("scan file not found").
			WithCause(err)
	}
	var scan scanFile
	if err := yaml.Unmarshal(data, &scan); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse scan yaml").
			WithCause(err)
	}
	if len(scan.Units) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("scan file has no units")
	}

	baseDir := filepath.Dir(path)
	var units []types.FixableUnit
	for _, unit := range scan.Units {
		units = append(units, types.FixableUnit{
			FileName:  unit.File,
			Plan:      unit.Plan,
			Workspace: NewFileWorkspace(unitRoot(baseDir, rootOverride, unit.Root, scan.Root)),
		})
	}
	return units, nil
}

// unitRoot resolves a unit's workspace root. A CLI override is taken
// verbatim; roots declared in the scan file are relative to the scan
// file's directory.
func unitRoot(baseDir string, override string, unitRoot string, scanRoot string) string {
	if override != "" {
		return override
	}
	for _, root := range []string{unitRoot, scanRoot} {
		if root == "" {
			continue
		}
		if filepath.IsAbs(root) {
			return root
		}
		return filepath.Join(baseDir, root)
	}
	return baseDir
}

var _ ports.ScanSourcePort = ScanFileAdapter{}
