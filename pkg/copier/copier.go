// Package copier copies files and directory trees through a types.FS.
package copier

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/rs/zerolog"
)

const dirPerm = 0755

// Copier performs deep copies between two filesystems. Source and destination
// may be the same FS.
type Copier struct {
	src    types.FS
	dst    types.FS
	logger zerolog.Logger
}

// New returns a Copier reading and writing through fs
func New(fs types.FS) *Copier {
	return NewBetween(fs, fs)
}

// NewBetween returns a Copier reading from src and writing to dst
func NewBetween(src, dst types.FS) *Copier {
	return &Copier{src: src, dst: dst, logger: logging.GetLogger("copier")}
}

// SkipFunc reports whether an entry met while copying a directory is left
// out. Skipped directories are not descended into.
type SkipFunc func(name string, isDir bool) bool

// SkipDirs returns a SkipFunc leaving out directories with the given names
func SkipDirs(names ...string) SkipFunc {
	return func(name string, isDir bool) bool {
		if !isDir {
			return false
		}
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}
}

// Copy copies the file or directory at src to dst, creating parents and
// overwriting existing files. File mode bits are preserved. It returns the
// number of files written.
func (c *Copier) Copy(src, dst string) (int, error) {
	return c.CopySkipping(src, dst, nil)
}

// CopySkipping is Copy leaving out directory entries matched by skip
func (c *Copier) CopySkipping(src, dst string, skip SkipFunc) (int, error) {
	info, err := c.src.Stat(src)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFilesystem, "cannot stat %s", src).
			WithDetail("path", src)
	}

	if err := c.dst.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return 0, errors.Wrapf(err, errors.ErrFilesystem, "cannot create parent of %s", dst).
			WithDetail("path", dst)
	}

	if info.IsDir() {
		return c.copyDir(src, dst, info.Mode(), skip)
	}
	if err := c.copyFile(src, dst, info.Mode()); err != nil {
		return 0, err
	}
	return 1, nil
}

// CopyTree copies the contents of the directory src into dst
func (c *Copier) CopyTree(src, dst string) (int, error) {
	info, err := c.src.Stat(src)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFilesystem, "cannot stat %s", src).
			WithDetail("path", src)
	}
	if !info.IsDir() {
		return 0, errors.Newf(errors.ErrFilesystem, "%s is not a directory", src).
			WithDetail("path", src)
	}

	c.logger.Debug().Str("src", src).Str("dst", dst).Msg("Copying tree")
	return c.copyDir(src, dst, info.Mode(), nil)
}

// Remove deletes path recursively. A missing path is not an error.
func (c *Copier) Remove(path string) error {
	if err := c.dst.RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "cannot remove %s", path).
			WithDetail("path", path)
	}
	c.logger.Debug().Str("path", path).Msg("Removed")
	return nil
}

// Exists reports whether path exists on the destination filesystem
func (c *Copier) Exists(path string) bool {
	_, err := c.dst.Stat(path)
	return err == nil
}

func (c *Copier) copyDir(src, dst string, mode fs.FileMode, skip SkipFunc) (int, error) {
	if err := c.dst.MkdirAll(dst, mode.Perm()|0700); err != nil {
		return 0, errors.Wrapf(err, errors.ErrFilesystem, "cannot create %s", dst).
			WithDetail("path", dst)
	}

	entries, err := c.src.ReadDir(src)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFilesystem, "cannot read directory %s", src).
			WithDetail("path", src)
	}

	written := 0
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		info, err := entry.Info()
		if err != nil {
			return written, errors.Wrapf(err, errors.ErrFilesystem, "cannot stat %s", from).
				WithDetail("path", from)
		}

		if skip != nil && skip(entry.Name(), info.IsDir()) {
			c.logger.Debug().Str("path", from).Msg("Skipped")
			continue
		}

		if info.Mode()&fs.ModeSymlink != 0 {
			n, err := c.copyLink(from, to, skip)
			written += n
			if err != nil {
				return written, err
			}
			continue
		}

		if info.IsDir() {
			n, err := c.copyDir(from, to, info.Mode(), skip)
			written += n
			if err != nil {
				return written, err
			}
			continue
		}

		if err := c.copyFile(from, to, info.Mode()); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// copyLink recreates a symbolic link when both sides support links and
// copies what it points to otherwise
func (c *Copier) copyLink(src, dst string, skip SkipFunc) (int, error) {
	srcLinks, okSrc := c.src.(types.LinkFS)
	dstLinks, okDst := c.dst.(types.LinkFS)
	if okSrc && okDst {
		target, err := srcLinks.Readlink(src)
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrFilesystem, "cannot read link %s", src).
				WithDetail("path", src)
		}
		if _, err := dstLinks.Lstat(dst); err == nil {
			if err := c.dst.RemoveAll(dst); err != nil {
				return 0, errors.Wrapf(err, errors.ErrFilesystem, "cannot replace %s", dst).
					WithDetail("path", dst)
			}
		}
		if err := dstLinks.Symlink(target, dst); err != nil {
			return 0, errors.Wrapf(err, errors.ErrFilesystem, "cannot link %s", dst).
				WithDetail("path", dst)
		}
		c.logger.Trace().Str("src", src).Str("dst", dst).Str("target", target).Msg("Copied link")
		return 1, nil
	}

	info, err := c.src.Stat(src)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFilesystem, "cannot follow link %s", src).
			WithDetail("path", src)
	}
	if info.IsDir() {
		return c.copyDir(src, dst, info.Mode(), skip)
	}
	if err := c.copyFile(src, dst, info.Mode()); err != nil {
		return 0, err
	}
	return 1, nil
}

func (c *Copier) copyFile(src, dst string, mode fs.FileMode) error {
	data, err := c.src.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "cannot read %s", src).
			WithDetail("path", src)
	}
	if err := c.dst.WriteFile(dst, data, mode.Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "cannot write %s", dst).
			WithDetail("path", dst)
	}
	c.logger.Trace().Str("src", src).Str("dst", dst).Int("bytes", len(data)).Msg("Copied file")
	return nil
}
