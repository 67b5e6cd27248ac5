// Package config handles configuration management for sfdelta.
// It supports loading configuration from multiple sources including
// embedded defaults, project TOML files, environment variables, and
// command-line flags.
package config
