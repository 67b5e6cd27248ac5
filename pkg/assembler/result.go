package assembler

import (
	"time"

	"github.com/arthur-debert/sfdelta/pkg/types"
)

// Outcome summarizes what a run produced
type Outcome string

const (
	// OutcomeFullCopy means no baseline was recorded and the whole source was copied
	OutcomeFullCopy Outcome = "full-copy"
	// OutcomePackaged means at least one unit was copied into the delta folder
	OutcomePackaged Outcome = "packaged"
	// OutcomeNoChanges means the diff against the baseline was empty
	OutcomeNoChanges Outcome = "no-changes"
	// OutcomeNoFilesCopied means changes existed but none produced a delta folder
	OutcomeNoFilesCopied Outcome = "no-files-copied"
)

// UnitStatus is what happened to one changed path
type UnitStatus string

const (
	StatusCopied   UnitStatus = "copied"
	StatusPresent  UnitStatus = "present"
	StatusExcluded UnitStatus = "excluded"
	StatusMissing  UnitStatus = "missing"
	StatusFailed   UnitStatus = "failed"
)

// UnitResult reports one changed path and the unit it resolved to
type UnitResult struct {
	Path   string
	Change types.ChangeStatus
	Unit   types.CopyUnit
	Status UnitStatus
	// Files is the number of files written for the unit
	Files   int
	Message string
	Err     error
}

// Result is the outcome of a run
type Result struct {
	Outcome      Outcome
	Key          string
	Marker       string
	SourceFolder string
	DeltaFolder  string
	DryRun       bool

	Units       []UnitResult
	FilesCopied int
	Failures    []UnitResult
	Duration    time.Duration
}

// HasFailures reports whether any unit failed to copy
func (r *Result) HasFailures() bool {
	return len(r.Failures) > 0
}

// Count returns the number of units with the given status
func (r *Result) Count(status UnitStatus) int {
	n := 0
	for _, u := range r.Units {
		if u.Status == status {
			n++
		}
	}
	return n
}

// Packaged reports whether a delta folder was produced
func (r *Result) Packaged() bool {
	return r.Outcome == OutcomePackaged || r.Outcome == OutcomeFullCopy
}
