package create

import (
	"context"

	"github.com/arthur-debert/sfdelta/pkg/assembler"
	"github.com/arthur-debert/sfdelta/pkg/baseline"
	"github.com/arthur-debert/sfdelta/pkg/config"
	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/filesystem"
	"github.com/arthur-debert/sfdelta/pkg/gitdiff"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/arthur-debert/sfdelta/pkg/paths"
	"github.com/arthur-debert/sfdelta/pkg/report"
	"github.com/arthur-debert/sfdelta/pkg/types"
)

// CreateDeltaPackageOptions holds options for building a delta package
type CreateDeltaPackageOptions struct {
	// WorkDir is the repository working directory; Config.Diff.Repository
	// takes precedence when set
	WorkDir string
	Config  *config.Config
	DryRun  bool

	// FileSystem, Diff and Baseline replace the OS filesystem, git and the
	// configured backend when set
	FileSystem types.FS
	Diff       types.DiffSource
	Baseline   types.BaselineSource
}

// CreateDeltaPackage looks up the baseline marker, diffs the source folder
// against it and copies the changed units into the delta folder.
func CreateDeltaPackage(ctx context.Context, opts CreateDeltaPackageOptions) (*report.Summary, error) {
	logger := logging.GetLogger("commands.create")
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New(errors.ErrConfiguration, "configuration is required")
	}

	workDir := cfg.Diff.Repository
	if workDir == "" {
		workDir = opts.WorkDir
	}
	layout, err := paths.NewLayout(workDir, cfg.Source.Folder, cfg.DeltaFolder())
	if err != nil {
		return nil, err
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	// the source folder is checked before any backend connection is made
	info, err := fs.Stat(layout.SourceDir())
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrConfiguration, "source folder %s does not exist or is not a directory", layout.Source()).
			WithDetail("path", layout.SourceDir())
	}

	settings := cfg.BaselineSettings()
	source := opts.Baseline
	key := ""
	if source == nil {
		src, err := baseline.Open(ctx, settings, fs, layout.WorkDir())
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := src.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close baseline backend")
			}
		}()
		source = src
		key = src.Key
	} else {
		if err := settings.Key.Validate(); err != nil {
			return nil, err
		}
		key = settings.Key.LookupKey()
	}

	diff := opts.Diff
	if diff == nil {
		diff = gitdiff.New(layout.WorkDir()).WithBinary(cfg.Diff.Git)
	}

	asm, err := assembler.New(assembler.Config{
		FileSystem: fs,
		Layout:     layout,
		Diff:       diff,
		Baseline:   source,
		Key:        key,
		Options:    cfg.AssemblerOptions(opts.DryRun),
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("source", layout.Source()).
		Str("delta", layout.DeltaDir()).
		Str("key", key).
		Str("backend", settings.Backend).
		Bool("dryRun", opts.DryRun).
		Msg("Creating delta package")

	result, err := asm.Run(ctx)
	if err != nil {
		return nil, err
	}

	summary := report.NewSummary(result)
	if cfg.Delta.Manifest {
		path, err := report.WriteManifest(fs, result)
		if err != nil {
			return summary, err
		}
		summary.Manifest = path
	}
	return summary, nil
}
