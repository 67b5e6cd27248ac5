package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/spf13/afero"
)

// Afero adapts an afero.Fs to types.FS
type Afero struct {
	backend afero.Fs
}

// New wraps any afero filesystem
func New(backend afero.Fs) *Afero {
	return &Afero{backend: backend}
}

// NewOS returns the real filesystem
func NewOS() types.FS {
	return New(afero.NewOsFs())
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() types.FS {
	return New(afero.NewMemMapFs())
}

// Backend exposes the wrapped afero filesystem
func (a *Afero) Backend() afero.Fs {
	return a.backend
}

func (a *Afero) Stat(name string) (fs.FileInfo, error) {
	return a.backend.Stat(name)
}

// ReadFile refuses directories, which MemMapFs would otherwise read as empty
func (a *Afero) ReadFile(name string) ([]byte, error) {
	if ok, err := afero.IsDir(a.backend, name); err != nil {
		return nil, err
	} else if ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.backend, name)
}

func (a *Afero) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.backend, name, data, perm)
}

func (a *Afero) MkdirAll(path string, perm fs.FileMode) error {
	return a.backend.MkdirAll(path, perm)
}

// ReadDir returns entries sorted by name
func (a *Afero) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.backend, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (a *Afero) Remove(name string) error {
	return a.backend.Remove(name)
}

func (a *Afero) RemoveAll(path string) error {
	return a.backend.RemoveAll(path)
}

// Lstat does not follow a trailing link where the backend supports it
func (a *Afero) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := a.backend.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return a.backend.Stat(name)
}

func (a *Afero) Readlink(name string) (string, error) {
	if r, ok := a.backend.(afero.LinkReader); ok {
		return r.ReadlinkIfPossible(name)
	}
	return "", &os.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}

func (a *Afero) Symlink(target, name string) error {
	if l, ok := a.backend.(afero.Linker); ok {
		return l.SymlinkIfPossible(target, name)
	}
	return &os.LinkError{Op: "symlink", Old: target, New: name, Err: afero.ErrNoSymlink}
}
