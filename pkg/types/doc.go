// Package types defines the core types and interfaces used throughout sfdelta.
// This includes the FS interface consumed by every stage of the pipeline, and
// data structures like ChangedPath, ComponentKind and CopyUnit.
package types
