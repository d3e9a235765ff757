package core

import (
	"path"
	"path/filepath"

	"reqfix/internal/types"
)

// pinTarget identifies the file that receives newly added pin lines.
type pinTarget struct {
	name     string
	manifest types.ParsedManifest
}

// selectPinTarget picks where new pins land. The originally scanned
// entry file is the default; the first constraint directive in the
// entry file whose target can be read overrides it. An unreadable
// constraint target falls back to the entry file rather than failing
// the unit.
func selectPinTarget(ws types.Workspace, entryDir string, entryName string, working map[string]types.ParsedManifest) pinTarget {
	entry := working[entryName]
	for _, line := range entry.Lines {
		if line.Kind != types.LineKindConstraint {
			continue
		}
		targetKey := path.Clean(path.Join(path.Dir(entryName), filepath.ToSlash(line.RefTarget)))
		if manifest, ok := working[targetKey]; ok {
			return pinTarget{name: targetKey, manifest: manifest}
		}
		content, err := ws.ReadFile(path.Join(entryDir, targetKey))
		if err != nil {
			break
		}
		return pinTarget{name: targetKey, manifest: ParseManifest(targetKey, content)}
	}
	return pinTarget{name: entryName, manifest: entry}
}
