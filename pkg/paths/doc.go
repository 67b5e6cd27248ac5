// Package paths provides separator-agnostic path segment handling and the
// source/delta folder layout used by the packaging pipeline.
//
// Changed paths come from git with forward slashes, but users on Windows pass
// source folders with backslashes. All pattern matching is done on segment
// arrays produced by Split, never on raw substrings, so a folder named
// "mylwc" is never mistaken for an "lwc" bundle directory.
//
// # Layout
//
// A Layout ties together three locations:
//
//   - WorkDir: the repository working directory; changed paths are relative to it
//   - Source: the source folder (e.g. force-app), relative to WorkDir
//   - Delta: the destination folder, <Source>_delta unless overridden
//
// Copy units are expressed relative to Source with forward slashes; Layout
// turns them into OS paths on either side.
package paths
