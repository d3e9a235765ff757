package types

// Workspace is the file capability a fixable unit carries. Paths are
// relative to the workspace root; implementations normalize them before
// touching disk. Abs maps a relative path to its canonical absolute
// form, the identity that files are deduplicated by across a whole
// batch.
type Workspace interface {
	ReadFile(path string) (string, error)
	WriteFile(path string, content string) error
	Abs(path string) string
}
