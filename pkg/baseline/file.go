package baseline

import (
	"context"
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// DefaultStateFile is the marker file name used when none is configured
const DefaultStateFile = ".sfdelta-state.toml"

// stateFile is the on-disk layout:
//
//	[markers]
//	VBTDeployKey = "4f1c2e..."
type stateFile struct {
	Markers map[string]string `toml:"markers"`
}

// FileSource reads markers from a TOML state file. A missing file holds no
// markers.
type FileSource struct {
	fs     types.FS
	path   string
	logger zerolog.Logger
}

// NewFile returns a source reading path through fs
func NewFile(fs types.FS, path string) *FileSource {
	return &FileSource{fs: fs, path: path, logger: logging.GetLogger("baseline.file")}
}

func (s *FileSource) Lookup(_ context.Context, key string) (string, bool, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Str("path", s.path).Msg("State file not found")
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrBaselineLookup, "cannot read state file %s", s.path).
			WithDetail("path", s.path)
	}

	var state stateFile
	if err := toml.Unmarshal(data, &state); err != nil {
		return "", false, errors.Wrapf(err, errors.ErrBaselineLookup, "cannot parse state file %s", s.path).
			WithDetail("path", s.path)
	}

	value, ok := state.Markers[key]
	s.logger.Debug().Str("path", s.path).Str("key", key).Bool("found", ok).Msg("Looked up baseline")
	return value, ok, nil
}

// Store records value under key, keeping the other markers
func (s *FileSource) Store(key, value string) error {
	state := stateFile{Markers: map[string]string{}}
	if data, err := s.fs.ReadFile(s.path); err == nil {
		if err := toml.Unmarshal(data, &state); err != nil {
			return errors.Wrapf(err, errors.ErrBaselineLookup, "cannot parse state file %s", s.path)
		}
		if state.Markers == nil {
			state.Markers = map[string]string{}
		}
	}
	state.Markers[key] = value

	data, err := toml.Marshal(state)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode state file")
	}
	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "cannot write state file %s", s.path)
	}
	return nil
}
