// Package gitdiff implements types.DiffSource on top of the git command line.
package gitdiff

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/rs/zerolog"
)

// Runner runs git in a working directory
type Runner struct {
	dir    string
	git    string
	logger zerolog.Logger
}

// New returns a Runner for the repository containing dir
func New(dir string) *Runner {
	return &Runner{dir: dir, git: "git", logger: logging.GetLogger("gitdiff")}
}

// WithBinary overrides the git executable
func (r *Runner) WithBinary(git string) *Runner {
	r.git = git
	return r
}

// IsRepository reports whether dir is inside a git work tree
func (r *Runner) IsRepository(ctx context.Context) bool {
	out, err := r.run(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		r.logger.Debug().Err(err).Str("dir", r.dir).Msg("Not a git work tree")
		return false
	}
	return strings.TrimSpace(string(out)) == "true"
}

// Diff lists the paths changed between marker and the working tree. Paths
// are relative to the working directory.
func (r *Runner) Diff(ctx context.Context, marker string, excludeRenames bool) ([]types.ChangedPath, error) {
	args := []string{"diff", "--name-status", "-z", "--relative"}
	if excludeRenames {
		args = append(args, "--no-renames")
	}
	args = append(args, marker, "--")

	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDiffRetrieval, "git diff against %s failed", marker).
			WithDetail("marker", marker).
			WithDetail("dir", r.dir)
	}

	changes, err := ParseNameStatus(out)
	if err != nil {
		return nil, err
	}
	r.logger.Info().
		Str("marker", marker).
		Int("changes", len(changes)).
		Bool("excludeRenames", excludeRenames).
		Msg("Retrieved diff")
	return changes, nil
}

// Head returns the commit the working tree is checked out at
func (r *Runner) Head(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrNotARepository, "cannot resolve HEAD").
			WithDetail("dir", r.dir)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *Runner) run(ctx context.Context, args ...string) ([]byte, error) {
	logging.LogCommand(r.git, args)

	cmd := exec.CommandContext(ctx, r.git, args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			r.logger.Debug().
				Err(err).
				Strs("args", args).
				Str("stderr", msg).
				Msg("git failed")
			return nil, errors.Wrap(err, errors.ErrInternal, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
