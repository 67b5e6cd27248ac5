// Package testutil provides utilities for testing sfdelta components.
//
// Key components:
//   - TestEnvironment: a repository with a force-app source folder, backed by
//     an in-memory afero filesystem or a real temp directory
//   - FakeDiffSource / FakeBaseline: scripted stand-ins for git and the
//     baseline marker store
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Only copy-engine and git integration tests need EnvIsolated
//   - All test data should be defined inline, not in external files
package testutil
