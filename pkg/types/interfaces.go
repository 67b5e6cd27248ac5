package types

import (
	"context"
	"io/fs"
)

// FS is what the pipeline reads the source folder from and writes the
// delta folder to
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}

// LinkFS is implemented by filesystems that can read and create symbolic
// links. Copies between two LinkFS recreate links instead of following them.
type LinkFS interface {
	Lstat(name string) (fs.FileInfo, error)
	Readlink(name string) (string, error)
	Symlink(target, name string) error
}

// DiffSource produces the list of changed paths since a baseline marker
type DiffSource interface {
	// IsRepository reports whether the working directory is under version control
	IsRepository(ctx context.Context) bool

	// Diff returns changed paths in the order the underlying tool reports them
	Diff(ctx context.Context, marker string, excludeRenames bool) ([]ChangedPath, error)
}

// BaselineSource looks up the recorded baseline marker for a key.
// found is false when no record exists; a record with an empty value is
// returned as found with an empty string.
type BaselineSource interface {
	Lookup(ctx context.Context, key string) (value string, found bool, err error)
}
