// Package report turns run results into the views the renderers print and
// writes the optional XML manifest of a delta package.
package report

import (
	"sort"

	"github.com/arthur-debert/sfdelta/pkg/assembler"
	"github.com/arthur-debert/sfdelta/pkg/types"
)

// Unit is one changed path in a summary
type Unit struct {
	Path    string   `json:"path" yaml:"path"`
	Change  string   `json:"change,omitempty" yaml:"change,omitempty"`
	Status  string   `json:"status" yaml:"status"`
	Kind    string   `json:"kind" yaml:"kind"`
	Bundle  string   `json:"bundle,omitempty" yaml:"bundle,omitempty"`
	Rule    string   `json:"rule,omitempty" yaml:"rule,omitempty"`
	Root    string   `json:"root" yaml:"root"`
	Extras  []string `json:"extras,omitempty" yaml:"extras,omitempty"`
	Files   int      `json:"files" yaml:"files"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// Summary is the printable view of a run
type Summary struct {
	Outcome     string         `json:"outcome" yaml:"outcome"`
	Message     string         `json:"message" yaml:"message"`
	Key         string         `json:"key" yaml:"key"`
	Marker      string         `json:"marker,omitempty" yaml:"marker,omitempty"`
	Source      string         `json:"source" yaml:"source"`
	Delta       string         `json:"delta" yaml:"delta"`
	DryRun      bool           `json:"dryRun" yaml:"dryRun"`
	Manifest    string         `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	FilesCopied int            `json:"filesCopied" yaml:"filesCopied"`
	Counts      map[string]int `json:"counts" yaml:"counts"`
	Units       []Unit         `json:"units" yaml:"units"`
	Failures    []Unit         `json:"failures,omitempty" yaml:"failures,omitempty"`
	DurationMS  int64          `json:"durationMs" yaml:"durationMs"`
}

// Classification is the printable view of the classify command
type Classification struct {
	Source string `json:"source" yaml:"source"`
	Units  []Unit `json:"units" yaml:"units"`
}

// NewSummary builds the view of a result
func NewSummary(r *assembler.Result) *Summary {
	s := &Summary{
		Outcome:     string(r.Outcome),
		Message:     OutcomeMessage(r),
		Key:         r.Key,
		Marker:      r.Marker,
		Source:      r.SourceFolder,
		Delta:       r.DeltaFolder,
		DryRun:      r.DryRun,
		FilesCopied: r.FilesCopied,
		Counts:      map[string]int{},
		Units:       make([]Unit, 0, len(r.Units)),
		DurationMS:  r.Duration.Milliseconds(),
	}
	for _, u := range r.Units {
		s.Units = append(s.Units, NewUnit(u))
		s.Counts[string(u.Status)]++
	}
	for _, u := range r.Failures {
		s.Failures = append(s.Failures, NewUnit(u))
	}
	return s
}

// NewUnit builds the view of one unit result
func NewUnit(u assembler.UnitResult) Unit {
	v := FromCopyUnit(u.Path, u.Unit)
	v.Change = string(u.Change)
	v.Status = string(u.Status)
	v.Files = u.Files
	v.Message = u.Message
	return v
}

// FromCopyUnit builds a view of a resolved unit that was not copied
func FromCopyUnit(path string, unit types.CopyUnit) Unit {
	v := Unit{
		Path:   path,
		Kind:   string(unit.Kind),
		Bundle: string(unit.Bundle),
		Rule:   unit.Rule,
		Root:   unit.Root,
		Extras: unit.Extras,
	}
	if unit.Excluded() {
		v.Message = unit.Reason
	}
	return v
}

// StatusNames returns the statuses present in counts, sorted
func (s *Summary) StatusNames() []string {
	names := make([]string, 0, len(s.Counts))
	for name := range s.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OutcomeMessage is the one-line description of a result
func OutcomeMessage(r *assembler.Result) string {
	prefix := ""
	if r.DryRun {
		prefix = "(dry run) "
	}
	switch r.Outcome {
	case assembler.OutcomeFullCopy:
		return prefix + "No baseline found, copied the complete source folder"
	case assembler.OutcomeNoChanges:
		return prefix + "No diffs found, nothing to package"
	case assembler.OutcomeNoFilesCopied:
		return prefix + "No files were copied, the delta folder was not created"
	case assembler.OutcomePackaged:
		if r.HasFailures() {
			return prefix + "Delta package created with failures"
		}
		return prefix + "Delta package created"
	default:
		return prefix + string(r.Outcome)
	}
}
