package types

import "strings"

// ManifestLine is one physical line of a requirements file. Raw always
// holds the line exactly as read so a manifest can be reconstructed
// without losing comments, spacing, or unrecognized directives.
type ManifestLine struct {
	Raw     string
	Kind    LineKind
	Name    string
	Op      VersionOp
	Version string

	// RefTarget is the referenced file for include (-r) and
	// constraint (-c) directive lines.
	RefTarget string
}

// ParsedManifest is the structurally tagged form of a requirements
// file. Lines preserve input order.
type ParsedManifest struct {
	Name  string
	Lines []ManifestLine
}

// Render reassembles the file body. For an unmodified parse the result
// is byte-identical to the input.
func (m ParsedManifest) Render() string {
	raws := make([]string, 0, len(m.Lines))
	for _, line := range m.Lines {
		raws = append(raws, line.Raw)
	}
	return strings.Join(raws, "\n")
}

// ProvenanceMap holds every file reachable from an entry manifest via
// include directives, keyed by name relative to the entry file's
// directory. Order preserves discovery order with the entry file first.
type ProvenanceMap struct {
	Order []string
	Files map[string]ParsedManifest
}
