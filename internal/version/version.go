package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/sfdelta/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/sfdelta/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/sfdelta/internal/version.Date={{.Date}}
)

// String formats the build information for the version command
func String() string {
	return fmt.Sprintf("sfdelta %s\n  commit: %s\n  built:  %s", Version, Commit, Date)
}
