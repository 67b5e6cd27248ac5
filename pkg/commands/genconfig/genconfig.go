package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/sfdelta/pkg/config"
	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/filesystem"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/arthur-debert/sfdelta/pkg/types"
)

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	WorkDir    string
	Write      bool
	FileSystem types.FS
}

// GenConfigResult is the generated configuration and the files written
type GenConfigResult struct {
	ConfigContent string   `json:"config" yaml:"config"`
	FilesWritten  []string `json:"filesWritten" yaml:"filesWritten"`
}

// GenConfig returns the default configuration. With Write it also creates
// the project file, unless the repository already has one in any format.
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	result := &GenConfigResult{
		ConfigContent: config.DefaultsContent(),
		FilesWritten:  []string{},
	}
	if !opts.Write {
		return result, nil
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	dir := opts.WorkDir
	if dir == "" {
		dir = "."
	}

	for _, name := range config.ProjectFiles {
		existing := filepath.Join(dir, name)
		if _, err := fs.Stat(existing); err == nil {
			logger.Warn().Str("path", existing).Msg("Config file already exists, skipping")
			return result, nil
		}
	}

	target := filepath.Join(dir, config.ProjectFiles[0])
	if err := fs.WriteFile(target, []byte(result.ConfigContent), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFilesystem, "failed to write config to %s", target).
			WithDetail("path", target)
	}

	logger.Info().Str("path", target).Msg("Wrote config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
