// Package commands provides high-level command implementations for sfdelta.
//
// This package is the orchestration layer between the CLI and the
// packaging pipeline. Each command lives in its own subdirectory:
//   - create/    - CreateDeltaPackage command
//   - classify/  - ClassifyPaths command
//   - mark/      - MarkBaseline command
//   - genconfig/ - GenConfig command
//
// This file re-exports the command functions.
package commands

import (
	"context"

	"github.com/arthur-debert/sfdelta/pkg/commands/classify"
	"github.com/arthur-debert/sfdelta/pkg/commands/create"
	"github.com/arthur-debert/sfdelta/pkg/commands/genconfig"
	"github.com/arthur-debert/sfdelta/pkg/commands/mark"
	"github.com/arthur-debert/sfdelta/pkg/report"
)

// CreateDeltaPackage builds the delta folder for the configured source folder.
type CreateDeltaPackageOptions = create.CreateDeltaPackageOptions

func CreateDeltaPackage(ctx context.Context, opts CreateDeltaPackageOptions) (*report.Summary, error) {
	return create.CreateDeltaPackage(ctx, opts)
}

// ClassifyPaths shows the copy unit each path resolves to.
type ClassifyPathsOptions = classify.ClassifyPathsOptions

func ClassifyPaths(opts ClassifyPathsOptions) (*report.Classification, error) {
	return classify.ClassifyPaths(opts)
}

// MarkBaseline records a baseline marker in the state file.
type MarkBaselineOptions = mark.MarkBaselineOptions
type MarkBaselineResult = mark.MarkBaselineResult

func MarkBaseline(ctx context.Context, opts MarkBaselineOptions) (*MarkBaselineResult, error) {
	return mark.MarkBaseline(ctx, opts)
}

// GenConfig outputs or writes the default project configuration.
type GenConfigOptions = genconfig.GenConfigOptions
type GenConfigResult = genconfig.GenConfigResult

func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
