package types

// ChangeRecord describes one applied or short-circuited change within a
// unit's fix. Records are ordered by application: upgrade phase first,
// then pin phase.
type ChangeRecord struct {
	File    string
	Package string
	From    string
	To      string
	Phase   FixPhase
	Status  ChangeStatus
	Message string
}

type UnitOutcome struct {
	Unit    FixableUnit
	Changes []ChangeRecord
}

type UnitFailure struct {
	Unit FixableUnit
	Err  error
}

// BatchResult partitions a run's units into three disjoint,
// order-preserving sequences. Every unit appears in exactly one.
type BatchResult struct {
	Succeeded []UnitOutcome
	Failed    []UnitFailure
	Skipped   []FixableUnit
}
