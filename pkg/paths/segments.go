package paths

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Split breaks p into its segments on both '/' and '\'. Empty and "."
// segments are dropped.
func Split(p string) []string {
	fields := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	out := fields[:0]
	for _, f := range fields {
		if f == "." {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Join joins segments with forward slashes
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// Normalize converts p to a clean, slash-separated relative form
func Normalize(p string) string {
	segs := Split(p)
	if len(segs) == 0 {
		return ""
	}
	return path.Clean(Join(segs...))
}

// Index returns the position of the first segment equal to name, or -1
func Index(segments []string, name string) int {
	for i, s := range segments {
		if s == name {
			return i
		}
	}
	return -1
}

// IndexAny returns the position and value of the first segment matching any
// of names, or -1 and "" when none does.
func IndexAny(segments []string, names ...string) (int, string) {
	for i, s := range segments {
		for _, n := range names {
			if s == n {
				return i, s
			}
		}
	}
	return -1, ""
}

// HasPrefix reports whether segments starts with prefix
func HasPrefix(segments, prefix []string) bool {
	if len(prefix) > len(segments) {
		return false
	}
	for i := range prefix {
		if segments[i] != prefix[i] {
			return false
		}
	}
	return true
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
		if homeDir == "" {
			return p
		}
	}
	if len(p) == 1 {
		return homeDir
	}
	if p[1] == '/' || p[1] == filepath.Separator {
		return filepath.Join(homeDir, p[2:])
	}
	// ~something (not the user's home)
	return p
}
