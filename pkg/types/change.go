package types

import "strings"

// ChangeStatus is the kind of change a diff source reported for a path
type ChangeStatus string

const (
	// ChangeModified means the file content changed
	ChangeModified ChangeStatus = "modified"
	// ChangeAdded means the file is new since the baseline
	ChangeAdded ChangeStatus = "added"
	// ChangeDeleted means the file no longer exists
	ChangeDeleted ChangeStatus = "deleted"
	// ChangeRenamed means the file moved; OldPath holds the previous location
	ChangeRenamed ChangeStatus = "renamed"
	// ChangeCopied means git detected a copy of another file
	ChangeCopied ChangeStatus = "copied"
	// ChangeTypeChanged means the file type changed (e.g. file to symlink)
	ChangeTypeChanged ChangeStatus = "typechange"
	// ChangeUnknown covers status letters we do not interpret
	ChangeUnknown ChangeStatus = "unknown"
)

// ParseChangeStatus maps a git --name-status letter (R and C may carry a
// similarity score, e.g. R087) to a ChangeStatus.
func ParseChangeStatus(code string) ChangeStatus {
	code = strings.TrimSpace(code)
	if code == "" {
		return ChangeUnknown
	}
	switch code[0] {
	case 'M':
		return ChangeModified
	case 'A':
		return ChangeAdded
	case 'D':
		return ChangeDeleted
	case 'R':
		return ChangeRenamed
	case 'C':
		return ChangeCopied
	case 'T':
		return ChangeTypeChanged
	default:
		return ChangeUnknown
	}
}

// ChangedPath is one entry of a diff result. Paths use forward slashes and
// are relative to the repository root.
type ChangedPath struct {
	Path    string
	Status  ChangeStatus
	OldPath string
}

// IsDeletion reports whether the path is gone from the working tree
func (c ChangedPath) IsDeletion() bool {
	return c.Status == ChangeDeleted
}
