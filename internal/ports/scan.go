package ports

import "reqfix/internal/types"

// ScanSourcePort loads fixable units from a scan file produced by an
// upstream vulnerability scanner. rootOverride, when non-empty, anchors
// every unit's workspace at that directory regardless of what the scan
// file declares.
type ScanSourcePort interface {
	LoadUnits(path string, rootOverride string) ([]types.FixableUnit, error)
}
