package core

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqfix/internal/types"
)

// ResolveProvenance reads the entry manifest and every file it pulls in
// through include directives, recursively. Map keys are slash-separated
// names relative to the entry file's directory; the entry file is
// always first in discovery order.
func ResolveProvenance(ctx context.Context, ws types.Workspace, entryFile string) (types.ProvenanceMap, error) {
	prov := types.ProvenanceMap{Files: map[string]types.ParsedManifest{}}
	entry := filepath.ToSlash(entryFile)
	dir := path.Dir(entry)
	inStack := map[string]struct{}{}
	if err := collectIncludes(ws, dir, path.Base(entry), &prov, inStack); err != nil {
		return types.ProvenanceMap{}, err
	}
	log.Ctx(ctx).Debug().Int("files", len(prov.Order)).Str("entry", entryFile).Msg("provenance resolved")
	return prov, nil
}

func collectIncludes(ws types.Workspace, dir string, name string, prov *types.ProvenanceMap, inStack map[string]struct{}) error {
	normalized := path.Clean(name)
	if _, ok := inStack[normalized]; ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("include cycle detected: %s", normalized))
	}
	if _, ok := prov.Files[normalized]; ok {
		return nil
	}
	content, err := ws.ReadFile(path.Join(dir, normalized))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read manifest %s", normalized)).
			WithCause(err)
	}
	manifest := ParseManifest(normalized, content)
	prov.Order = append(prov.Order, normalized)
	prov.Files[normalized] = manifest

	inStack[normalized] = struct{}{}
	defer delete(inStack, normalized)
	for _, line := range manifest.Lines {
		if line.Kind != types.LineKindInclude {
			continue
		}
		target := path.Join(path.Dir(normalized), filepath.ToSlash(line.RefTarget))
		if err := collectIncludes(ws, dir, target, prov, inStack); err != nil {
			return err
		}
	}
	return nil
}
