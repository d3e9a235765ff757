package types

type LineKind string

const (
	LineKindRequirement LineKind = "requirement"
	LineKindComment     LineKind = "comment"
	LineKindBlank       LineKind = "blank"
	LineKindInclude     LineKind = "include"
	LineKindConstraint  LineKind = "constraint"
	LineKindUnknown     LineKind = "unknown"
)

type FixPhase string

const (
	FixPhaseUpgrade FixPhase = "upgrade"
	FixPhasePin     FixPhase = "pin"
)

type ChangeStatus string

const (
	ChangeStatusApplied      ChangeStatus = "applied"
	ChangeStatusAlreadyFixed ChangeStatus = "already-fixed"
)

type UnitStatus string

const (
	UnitStatusSucceeded UnitStatus = "succeeded"
	UnitStatusFailed    UnitStatus = "failed"
	UnitStatusSkipped   UnitStatus = "skipped"
)

type VersionOp string

const (
	VersionOpNone   VersionOp = ""
	VersionOpEq     VersionOp = "=="
	VersionOpArbEq  VersionOp = "==="
	VersionOpNe     VersionOp = "!="
	VersionOpCompat VersionOp = "~="
	VersionOpGte    VersionOp = ">="
	VersionOpLte    VersionOp = "<="
	VersionOpGt     VersionOp = ">"
	VersionOpLt     VersionOp = "<"
)
