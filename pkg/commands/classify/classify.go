package classify

import (
	"github.com/arthur-debert/sfdelta/pkg/filesystem"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/arthur-debert/sfdelta/pkg/paths"
	"github.com/arthur-debert/sfdelta/pkg/report"
	"github.com/arthur-debert/sfdelta/pkg/rules"
	"github.com/arthur-debert/sfdelta/pkg/types"
)

// ClassifyPathsOptions holds options for the classify command
type ClassifyPathsOptions struct {
	WorkDir      string
	SourceFolder string
	// Paths are relative to WorkDir, as git reports them
	Paths      []string
	FileSystem types.FS
}

// ClassifyPaths resolves the copy unit of each path without copying anything
func ClassifyPaths(opts ClassifyPathsOptions) (*report.Classification, error) {
	logger := logging.GetLogger("commands.classify")

	layout, err := paths.NewLayout(opts.WorkDir, opts.SourceFolder, "")
	if err != nil {
		return nil, err
	}
	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	classifier := rules.NewClassifier(fs, layout)
	result := &report.Classification{
		Source: layout.Source(),
		Units:  make([]report.Unit, 0, len(opts.Paths)),
	}
	for _, p := range opts.Paths {
		p = paths.Normalize(p)
		unit := classifier.Resolve(p)
		logger.Debug().
			Str("path", p).
			Str("kind", string(unit.Kind)).
			Str("root", unit.Root).
			Msg("Classified path")
		result.Units = append(result.Units, report.FromCopyUnit(p, unit))
	}
	return result, nil
}
