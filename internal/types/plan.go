package types

// RemediationPlan maps plan keys of the form "<name>@<currentVersionOrRange>"
// to target versions. Upgrade entries rewrite existing dependency lines in
// place; pin entries assert a constraint must exist afterwards, adding a
// line when none matches.
type RemediationPlan struct {
	Upgrade map[string]string `yaml:"upgrade,omitempty"`
	Pin     map[string]string `yaml:"pin,omitempty"`
}

// Empty reports whether the plan carries no entries at all.
func (p *RemediationPlan) Empty() bool {
	if p == nil {
		return true
	}
	return len(p.Upgrade) == 0 && len(p.Pin) == 0
}

// FixableUnit bundles one scanned project's remediation request: the
// manifest that was scanned, the plan to apply, and the workspace the
// files live in. Units are immutable for the duration of a fix run.
type FixableUnit struct {
	FileName  string
	Plan      *RemediationPlan
	Workspace Workspace
}
