// Package assembler builds the delta folder: it checks the baseline marker,
// asks the diff source for changed paths and copies the unit each path
// resolves to.
package assembler

import (
	"context"
	"strings"
	"time"

	"github.com/arthur-debert/sfdelta/pkg/copier"
	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/filesystem"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/arthur-debert/sfdelta/pkg/paths"
	"github.com/arthur-debert/sfdelta/pkg/rules"
	"github.com/arthur-debert/sfdelta/pkg/tracker"
	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/rs/zerolog"
)

// State is a step of a run
type State string

const (
	StateInit          State = "init"
	StateBaselineCheck State = "baseline-check"
	StateFullCopy      State = "full-copy"
	StateDiffCopy      State = "diff-copy"
	StateDone          State = "done"
	StateAborted       State = "aborted"
)

// Options tune a run
type Options struct {
	// DryRun resolves and reports units without writing anything
	DryRun bool
	// Strict aborts on the first copy failure instead of collecting failures
	Strict bool
	// ExcludeRenames asks the diff source to report renames as delete + add
	ExcludeRenames bool
	// StatCacheSize bounds the cache of source Stat results
	StatCacheSize int
}

// Config wires an Assembler
type Config struct {
	FileSystem types.FS
	Layout     *paths.Layout
	Diff       types.DiffSource
	Baseline   types.BaselineSource
	// Key is the record name looked up in Baseline
	Key string
	// Rules overrides the default classification table
	Rules   []rules.Rule
	Options Options
}

// Assembler runs one delta build. It owns the delta folder for the duration
// of the run.
type Assembler struct {
	fs         types.FS
	layout     *paths.Layout
	diff       types.DiffSource
	baseline   types.BaselineSource
	key        string
	opts       Options
	classifier *rules.Classifier
	copier     *copier.Copier
	copied     *tracker.CopiedRootSet
	state      State
	logger     zerolog.Logger
}

// New creates an Assembler
func New(cfg Config) (*Assembler, error) {
	if cfg.Layout == nil {
		return nil, errors.New(errors.ErrConfiguration, "layout is required")
	}
	fs := cfg.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	// classification only reads the source tree, which does not change
	// during a run
	cached, err := filesystem.NewStatCache(fs, cfg.Options.StatCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot create stat cache")
	}
	table := cfg.Rules
	if table == nil {
		table = rules.DefaultRules()
	}

	return &Assembler{
		fs:         fs,
		layout:     cfg.Layout,
		diff:       cfg.Diff,
		baseline:   cfg.Baseline,
		key:        cfg.Key,
		opts:       cfg.Options,
		classifier: rules.NewClassifierWithRules(table, cached, cfg.Layout),
		copier:     copier.New(fs),
		copied:     tracker.New(),
		state:      StateInit,
		logger:     logging.GetLogger("assembler"),
	}, nil
}

// State returns the current state
func (a *Assembler) State() State {
	return a.state
}

// Copied returns the roots recorded so far
func (a *Assembler) Copied() *tracker.CopiedRootSet {
	return a.copied
}

func (a *Assembler) transition(next State) {
	a.logger.Debug().Str("from", string(a.state)).Str("to", string(next)).Msg("State transition")
	a.state = next
}

func (a *Assembler) abort(err error) error {
	a.transition(StateAborted)
	a.logger.Error().Err(err).Msg("Run aborted")
	return err
}

func (a *Assembler) newResult() *Result {
	return &Result{
		Key:          a.key,
		SourceFolder: a.layout.SourceDir(),
		DeltaFolder:  a.layout.DeltaDir(),
		DryRun:       a.opts.DryRun,
	}
}

// Run executes the whole flow: baseline check, then a full copy when no
// marker is recorded or a diff copy against the marker.
func (a *Assembler) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	done := logging.LogOperationStart(a.logger, "run")
	defer done()

	a.logger.Info().
		Str("source", a.layout.Source()).
		Str("delta", a.layout.DeltaDir()).
		Str("key", a.key).
		Bool("dryRun", a.opts.DryRun).
		Bool("strict", a.opts.Strict).
		Msg("Starting delta build")

	// Step 1: validate inputs before touching anything
	if err := a.checkInit(); err != nil {
		return nil, a.abort(err)
	}

	// Step 2: look up the baseline marker
	a.transition(StateBaselineCheck)
	if err := ctx.Err(); err != nil {
		return nil, a.abort(errors.Wrap(err, errors.ErrInternal, "run cancelled"))
	}
	marker, found, err := a.baseline.Lookup(ctx, a.key)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			err = errors.Wrapf(err, errors.ErrBaselineLookup, "cannot look up baseline %s", a.key)
		}
		return nil, a.abort(err)
	}

	var result *Result
	if !found {
		a.logger.Info().Str("key", a.key).Msg("No baseline recorded, copying the full source folder")
		result, err = a.fullCopy()
	} else {
		result, err = a.diffCopy(ctx, marker)
	}
	if err != nil {
		return result, err
	}

	result.Duration = time.Since(start)
	a.logger.Info().
		Str("outcome", string(result.Outcome)).
		Int("units", len(result.Units)).
		Int("files", result.FilesCopied).
		Int("failures", len(result.Failures)).
		Dur("duration", result.Duration).
		Msg("Delta build finished")
	return result, nil
}

func (a *Assembler) checkInit() error {
	if a.diff == nil || a.baseline == nil {
		return errors.New(errors.ErrConfiguration, "diff source and baseline source are required")
	}
	info, err := a.fs.Stat(a.layout.SourceDir())
	if err != nil {
		return errors.Newf(errors.ErrConfiguration, "source folder %s does not exist", a.layout.Source()).
			WithDetail("path", a.layout.SourceDir())
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrConfiguration, "source folder %s is not a directory", a.layout.Source()).
			WithDetail("path", a.layout.SourceDir())
	}
	return nil
}

func (a *Assembler) fullCopy() (*Result, error) {
	a.transition(StateFullCopy)
	result := a.newResult()
	result.Outcome = OutcomeFullCopy

	if a.opts.DryRun {
		a.logger.Info().Msg("Dry run, full copy skipped")
		a.transition(StateDone)
		return result, nil
	}

	if err := a.copier.Remove(a.layout.DeltaDir()); err != nil {
		return nil, a.abort(err)
	}
	n, err := a.copier.CopyTree(a.layout.SourceDir(), a.layout.DeltaDir())
	result.FilesCopied = n
	if err != nil {
		return nil, a.abort(err)
	}
	a.transition(StateDone)
	return result, nil
}

func (a *Assembler) diffCopy(ctx context.Context, marker string) (*Result, error) {
	if strings.TrimSpace(marker) == "" {
		return nil, a.abort(errors.Newf(errors.ErrBaselineEmpty,
			"baseline record %s exists but holds no marker, nothing was copied", a.key).
			WithDetail("key", a.key))
	}
	a.logger.Info().Str("marker", marker).Msg("Baseline found")

	if !a.diff.IsRepository(ctx) {
		return nil, a.abort(errors.New(errors.ErrNotARepository, "current directory is not a repository").
			WithDetail("dir", a.layout.WorkDir()))
	}

	if !a.opts.DryRun && a.copier.Exists(a.layout.DeltaDir()) {
		a.logger.Info().Str("path", a.layout.DeltaDir()).Msg("Deleting old delta folder")
		if err := a.copier.Remove(a.layout.DeltaDir()); err != nil {
			a.logger.Warn().Err(err).Msg("Could not delete old delta folder")
		}
	}

	changes, err := a.diff.Diff(ctx, marker, a.opts.ExcludeRenames)
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrDiffRetrieval) {
			err = errors.Wrapf(err, errors.ErrDiffRetrieval, "diff against %s failed, nothing was copied", marker)
		}
		return nil, a.abort(err)
	}

	result, err := a.Package(ctx, changes)
	if result != nil {
		result.Marker = marker
	}
	return result, err
}

// Package copies the units the changed paths resolve to, in order. It can be
// called on its own when the changes come from elsewhere.
func (a *Assembler) Package(ctx context.Context, changes []types.ChangedPath) (*Result, error) {
	a.transition(StateDiffCopy)
	result := a.newResult()

	if len(changes) == 0 {
		a.logger.Info().Msg("No changes since baseline")
		result.Outcome = OutcomeNoChanges
		a.transition(StateDone)
		return result, nil
	}

	wouldCopy := false
	for _, change := range changes {
		if err := ctx.Err(); err != nil {
			return result, a.abort(errors.Wrap(err, errors.ErrInternal, "run cancelled"))
		}

		ur := a.processChange(change)
		result.Units = append(result.Units, ur)
		result.FilesCopied += ur.Files

		switch ur.Status {
		case StatusCopied:
			wouldCopy = true
		case StatusFailed:
			result.Failures = append(result.Failures, ur)
			if a.opts.Strict {
				return result, a.abort(ur.Err)
			}
		}
	}

	switch {
	case a.opts.DryRun && wouldCopy:
		result.Outcome = OutcomePackaged
	case !a.opts.DryRun && a.copier.Exists(a.layout.DeltaDir()):
		result.Outcome = OutcomePackaged
	default:
		a.logger.Info().Msg("No files were copied")
		result.Outcome = OutcomeNoFilesCopied
	}
	a.transition(StateDone)
	return result, nil
}

// skipFor keeps lwc test fixtures out of copied bundles
func (a *Assembler) skipFor(unit types.CopyUnit) copier.SkipFunc {
	if unit.Bundle == types.BundleLWC {
		return copier.SkipDirs(rules.SegTests)
	}
	return nil
}

func (a *Assembler) processChange(change types.ChangedPath) UnitResult {
	unit := a.classifier.Resolve(change.Path)
	ur := UnitResult{Path: change.Path, Change: change.Status, Unit: unit}

	if unit.Excluded() {
		ur.Status = StatusExcluded
		ur.Message = unit.Reason
		a.logger.Debug().Str("path", change.Path).Str("reason", unit.Reason).Msg("Excluded")
		return ur
	}

	release, already := a.copied.Claim(unit.Root)
	defer release()

	if already {
		ur.Status = StatusPresent
		ur.Message = "already copied in this run"
		return ur
	}
	if a.copier.Exists(a.layout.DeltaPath(unit.Root)) {
		a.copied.Record(unit.Root)
		ur.Status = StatusPresent
		ur.Message = "already present in the delta folder"
		a.logger.Info().Str("root", unit.Root).Msg("Already present, skipping")
		return ur
	}
	if _, err := a.fs.Stat(a.layout.SourcePath(unit.Root)); err != nil {
		ur.Status = StatusMissing
		ur.Message = "not found in the source folder"
		a.logger.Info().Str("path", change.Path).Str("root", unit.Root).Msg("Root missing, skipping")
		return ur
	}

	for _, rel := range unit.Paths() {
		if rel != unit.Root && (a.copied.Seen(rel) || a.copier.Exists(a.layout.DeltaPath(rel))) {
			continue
		}
		if a.opts.DryRun {
			a.copied.Record(rel)
			continue
		}
		n, err := a.copier.CopySkipping(a.layout.SourcePath(rel), a.layout.DeltaPath(rel), a.skipFor(unit))
		ur.Files += n
		if err != nil {
			ur.Status = StatusFailed
			ur.Err = err
			ur.Message = err.Error()
			a.logger.Error().Err(err).Str("path", change.Path).Str("copy", rel).Msg("Copy failed")
			return ur
		}
		a.copied.Record(rel)
		a.logger.Info().Str("path", rel).Int("files", n).Msg("Copied")
	}

	ur.Status = StatusCopied
	if a.opts.DryRun {
		ur.Message = "would copy"
	}
	return ur
}
