package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/errors"
)

// DefaultDeltaSuffix is appended to the source folder name to form the delta folder
const DefaultDeltaSuffix = "_delta"

// Layout locates the source and delta folders
type Layout struct {
	workDir string
	source  string
	delta   string

	sourceSegs []string
}

// NewLayout builds a Layout. source and delta may be relative to workDir or
// absolute; an empty delta means <source>_delta.
func NewLayout(workDir, source, delta string) (*Layout, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New(errors.ErrConfiguration, "source folder is required")
	}
	if workDir == "" {
		workDir = "."
	}
	workDir = ExpandHome(workDir)

	source = ExpandHome(source)
	if filepath.IsAbs(source) {
		rel, err := filepath.Rel(workDir, source)
		if err != nil || escapes(rel) {
			return nil, errors.Newf(errors.ErrConfiguration,
				"source folder %s is not inside the repository %s", source, workDir)
		}
		source = rel
	}
	source = Normalize(source)
	if source == "" {
		return nil, errors.New(errors.ErrConfiguration,
			"source folder must be a sub-folder of the repository")
	}

	if strings.TrimSpace(delta) == "" {
		delta = source + DefaultDeltaSuffix
	}
	delta = ExpandHome(delta)
	if !filepath.IsAbs(delta) {
		delta = filepath.FromSlash(Normalize(delta))
	}

	l := &Layout{
		workDir:    workDir,
		source:     source,
		delta:      delta,
		sourceSegs: Split(source),
	}
	// the delta folder is emptied before each run and filled from the source
	if within(l.SourceDir(), l.DeltaDir()) || within(l.DeltaDir(), l.SourceDir()) {
		return nil, errors.Newf(errors.ErrConfiguration,
			"delta folder %s must not overlap the source folder %s", l.DeltaDir(), l.SourceDir())
	}
	return l, nil
}

// escapes reports whether a filepath.Rel result leaves its base directory
func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// within reports whether path is dir or lies below it
func within(dir, path string) bool {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return !filepath.IsAbs(rel) && !escapes(rel)
}

// WorkDir returns the repository working directory
func (l *Layout) WorkDir() string {
	return l.workDir
}

// Source returns the source folder, slash separated and relative to WorkDir
func (l *Layout) Source() string {
	return l.source
}

// SourceDir returns the OS path of the source folder
func (l *Layout) SourceDir() string {
	return filepath.Join(l.workDir, filepath.FromSlash(l.source))
}

// DeltaDir returns the OS path of the delta folder
func (l *Layout) DeltaDir() string {
	if filepath.IsAbs(l.delta) {
		return l.delta
	}
	return filepath.Join(l.workDir, l.delta)
}

// SourcePath returns the OS path of rel (relative to the source folder)
func (l *Layout) SourcePath(rel string) string {
	return filepath.Join(l.SourceDir(), filepath.FromSlash(rel))
}

// DeltaPath returns the OS path rel maps to inside the delta folder
func (l *Layout) DeltaPath(rel string) string {
	return filepath.Join(l.DeltaDir(), filepath.FromSlash(rel))
}

// RelToSource strips the source folder from a repository-relative changed
// path. ok is false when the path is not inside the source folder.
func (l *Layout) RelToSource(changed string) (rel string, ok bool) {
	segs := Split(changed)
	if !HasPrefix(segs, l.sourceSegs) || len(segs) == len(l.sourceSegs) {
		return "", false
	}
	return Join(segs[len(l.sourceSegs):]...), true
}
