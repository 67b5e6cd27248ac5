// Package filesystem provides the types.FS implementations: afero over the
// OS or an in-memory MemMapFs, and a Stat cache in front of either.
package filesystem
