package testutil

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/sfdelta/pkg/filesystem"
	"github.com/arthur-debert/sfdelta/pkg/paths"
	"github.com/arthur-debert/sfdelta/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// DefaultSource is the source folder every environment is created with
const DefaultSource = "force-app"

// TestEnvironment is a repository working directory holding a source folder
type TestEnvironment struct {
	RepoRoot string
	FS       types.FS
	Layout   *paths.Layout
	Type     EnvType

	t testing.TB
}

// NewTestEnvironment creates a new test environment with files written
// relative to the repository root
func NewTestEnvironment(t testing.TB, envType EnvType, files map[string]string) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.RepoRoot = "/repo"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.RepoRoot = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	layout, err := paths.NewLayout(env.RepoRoot, DefaultSource, "")
	if err != nil {
		t.Fatalf("Failed to create layout: %v", err)
	}
	env.Layout = layout

	if err := env.FS.MkdirAll(layout.SourceDir(), 0755); err != nil {
		t.Fatalf("Failed to create source folder: %v", err)
	}

	// deterministic creation order
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		env.AddFile(name, files[name])
	}
	return env
}

// Path returns the OS path of a repository-relative path
func (e *TestEnvironment) Path(rel string) string {
	return filepath.Join(e.RepoRoot, filepath.FromSlash(rel))
}

// AddFile writes a file relative to the repository root
func (e *TestEnvironment) AddFile(rel, content string) {
	e.t.Helper()
	p := e.Path(rel)
	if err := e.FS.MkdirAll(filepath.Dir(p), 0755); err != nil {
		e.t.Fatalf("Failed to create parent of %s: %v", rel, err)
	}
	if err := e.FS.WriteFile(p, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write %s: %v", rel, err)
	}
}

// AddDir creates a directory relative to the repository root
func (e *TestEnvironment) AddDir(rel string) {
	e.t.Helper()
	if err := e.FS.MkdirAll(e.Path(rel), 0755); err != nil {
		e.t.Fatalf("Failed to create %s: %v", rel, err)
	}
}

// DeltaExists reports whether the delta folder was created
func (e *TestEnvironment) DeltaExists() bool {
	_, err := e.FS.Stat(e.Layout.DeltaDir())
	return err == nil
}

// DeltaFiles lists every file in the delta folder, slash separated and
// relative to it, sorted
func (e *TestEnvironment) DeltaFiles() []string {
	return e.listFiles(e.Layout.DeltaDir())
}

// SourceFiles lists every file in the source folder the same way
func (e *TestEnvironment) SourceFiles() []string {
	return e.listFiles(e.Layout.SourceDir())
}

// ReadDelta returns the content of a file in the delta folder
func (e *TestEnvironment) ReadDelta(rel string) (string, bool) {
	data, err := e.FS.ReadFile(e.Layout.DeltaPath(rel))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (e *TestEnvironment) listFiles(root string) []string {
	var out []string
	var walk func(dir, prefix string)
	walk = func(dir, prefix string) {
		entries, err := e.FS.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			rel := path.Join(prefix, entry.Name())
			if entry.IsDir() || entry.Type()&fs.ModeDir != 0 {
				walk(filepath.Join(dir, entry.Name()), rel)
				continue
			}
			out = append(out, rel)
		}
	}
	walk(root, "")
	sort.Strings(out)
	return out
}
