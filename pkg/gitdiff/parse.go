package gitdiff

import (
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/types"
)

// ParseNameStatus parses the NUL separated output of
// `git diff --name-status -z`. Each record is a status letter followed by one
// path, or two paths (old, new) for renames and copies.
func ParseNameStatus(out []byte) ([]types.ChangedPath, error) {
	fields := strings.Split(string(out), "\x00")
	// output ends with a NUL
	if n := len(fields); n > 0 && fields[n-1] == "" {
		fields = fields[:n-1]
	}

	var changes []types.ChangedPath
	for i := 0; i < len(fields); {
		code := strings.TrimSpace(fields[i])
		if code == "" {
			i++
			continue
		}
		status := types.ParseChangeStatus(code)

		if status == types.ChangeRenamed || status == types.ChangeCopied {
			if i+2 >= len(fields) {
				return nil, errors.Newf(errors.ErrDiffRetrieval,
					"truncated %s record in diff output", code)
			}
			changes = append(changes, types.ChangedPath{
				Path:    fields[i+2],
				Status:  status,
				OldPath: fields[i+1],
			})
			i += 3
			continue
		}

		if i+1 >= len(fields) {
			return nil, errors.Newf(errors.ErrDiffRetrieval,
				"truncated %s record in diff output", code)
		}
		changes = append(changes, types.ChangedPath{Path: fields[i+1], Status: status})
		i += 2
	}
	return changes, nil
}
