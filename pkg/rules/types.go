package rules

import (
	"github.com/arthur-debert/sfdelta/pkg/paths"
	"github.com/arthur-debert/sfdelta/pkg/types"
)

// Target is a changed path prepared for matching
type Target struct {
	// Rel is the path relative to the source folder, slash separated
	Rel string
	// Segments is Rel split into path segments
	Segments []string
}

// NewTarget builds a Target from a source-relative path
func NewTarget(rel string) Target {
	segs := paths.Split(rel)
	return Target{Rel: paths.Join(segs...), Segments: segs}
}

// Name returns the last segment
func (t Target) Name() string {
	if len(t.Segments) == 0 {
		return ""
	}
	return t.Segments[len(t.Segments)-1]
}

// Rule is one row of the classification table
type Rule struct {
	Name string
	Kind types.ComponentKind

	// Match reports whether the rule applies to the target
	Match func(ctx *Context, t Target) bool

	// Resolve computes the copy unit; only called when Match returned true
	Resolve func(ctx *Context, t Target) types.CopyUnit
}

// Context gives rules read access to the source tree
type Context struct {
	FS     types.FS
	Layout *paths.Layout
}

// Exists reports whether rel exists in the source folder
func (c *Context) Exists(rel string) bool {
	_, err := c.FS.Stat(c.Layout.SourcePath(rel))
	return err == nil
}

// IsDir reports whether rel is a directory in the source folder
func (c *Context) IsDir(rel string) bool {
	info, err := c.FS.Stat(c.Layout.SourcePath(rel))
	return err == nil && info.IsDir()
}

// Existing filters rels down to the ones present in the source folder
func (c *Context) Existing(rels ...string) []string {
	var out []string
	for _, r := range rels {
		if c.Exists(r) {
			out = append(out, r)
		}
	}
	return out
}

// List returns the entry names of the source directory rel
func (c *Context) List(rel string) []string {
	entries, err := c.FS.ReadDir(c.Layout.SourcePath(rel))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
