package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqfix/internal/types"
)

// FileWorkspace reads and writes manifest files beneath a root
// directory. Relative paths are joined and cleaned before use so
// equivalent spellings collapse to one location on disk.
type FileWorkspace struct {
	Root string
}

func NewFileWorkspace(root string) FileWorkspace {
	return FileWorkspace{Root: root}
}

func (w FileWorkspace) ReadFile(path string) (string, error) {
	full, err := w.resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read %s", path)).
			WithCause(err)
	}
	return string(data), nil
}

func (w FileWorkspace) WriteFile(path string, content string) error {
	full, err := w.resolve(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", path)).
			WithCause(err)
	}
	return nil
}

// Abs returns the canonical absolute location of a workspace-relative
// path. Units rooted in different directories therefore never collide
// on the same relative spelling.
func (w FileWorkspace) Abs(path string) string {
	return filepath.ToSlash(filepath.Clean(filepath.Join(w.Root, filepath.FromSlash(path))))
}

func (w FileWorkspace) resolve(path string) (string, error) {
	if w.Root == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is empty")
	}
	return filepath.Clean(filepath.Join(w.Root, filepath.FromSlash(path))), nil
}

var _ types.Workspace = FileWorkspace{}
