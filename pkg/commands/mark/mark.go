package mark

import (
	"context"
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/baseline"
	"github.com/arthur-debert/sfdelta/pkg/config"
	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/filesystem"
	"github.com/arthur-debert/sfdelta/pkg/gitdiff"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/arthur-debert/sfdelta/pkg/types"
)

// HeadFunc resolves the current commit
type HeadFunc func(ctx context.Context) (string, error)

// MarkBaselineOptions holds options for recording a baseline marker
type MarkBaselineOptions struct {
	WorkDir string
	Config  *config.Config
	// Marker is recorded as is; when empty the current commit is used
	Marker string

	FileSystem types.FS
	Head       HeadFunc
}

// MarkBaselineResult is what was recorded
type MarkBaselineResult struct {
	Key    string `json:"key" yaml:"key"`
	Marker string `json:"marker" yaml:"marker"`
	Path   string `json:"path" yaml:"path"`
}

// MarkBaseline records a marker in the file backend's state file so the
// next run diffs against it. Other backends are written by the deploy
// tooling that owns them.
func MarkBaseline(ctx context.Context, opts MarkBaselineOptions) (*MarkBaselineResult, error) {
	logger := logging.GetLogger("commands.mark")
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New(errors.ErrConfiguration, "configuration is required")
	}

	settings := cfg.BaselineSettings()
	if !strings.EqualFold(settings.Backend, baseline.BackendFile) {
		return nil, errors.Newf(errors.ErrConfiguration,
			"mark only writes the %s backend, configured backend is %q", baseline.BackendFile, settings.Backend)
	}
	if err := settings.Key.Validate(); err != nil {
		return nil, err
	}

	workDir := cfg.Diff.Repository
	if workDir == "" {
		workDir = opts.WorkDir
	}
	if workDir == "" {
		workDir = "."
	}

	marker := strings.TrimSpace(opts.Marker)
	if marker == "" {
		head := opts.Head
		if head == nil {
			head = gitdiff.New(workDir).WithBinary(cfg.Diff.Git).Head
		}
		sha, err := head(ctx)
		if err != nil {
			return nil, err
		}
		marker = sha
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	result := &MarkBaselineResult{
		Key:    settings.Key.LookupKey(),
		Marker: marker,
		Path:   settings.StatePath(workDir),
	}
	if err := baseline.NewFile(fs, result.Path).Store(result.Key, marker); err != nil {
		return nil, err
	}

	logger.Info().
		Str("key", result.Key).
		Str("marker", marker).
		Str("path", result.Path).
		Msg("Recorded baseline marker")
	return result, nil
}
