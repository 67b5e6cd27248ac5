package config

import (
	"github.com/arthur-debert/sfdelta/pkg/assembler"
	"github.com/arthur-debert/sfdelta/pkg/baseline"
)

// Config is the fully resolved configuration of a run
type Config struct {
	Source   Source   `koanf:"source"`
	Delta    Delta    `koanf:"delta"`
	Diff     Diff     `koanf:"diff"`
	Baseline Baseline `koanf:"baseline"`
	Run      Run      `koanf:"run"`
	Output   Output   `koanf:"output"`
}

type Source struct {
	Folder string `koanf:"folder"`
}

type Delta struct {
	// Folder overrides Source.Folder + Suffix when set
	Folder   string `koanf:"folder"`
	Suffix   string `koanf:"suffix"`
	Manifest bool   `koanf:"manifest"`
}

type Diff struct {
	ExcludeRenames bool   `koanf:"exclude_renames"`
	Repository     string `koanf:"repository"`
	Git            string `koanf:"git"`
}

type Baseline struct {
	Backend      string `koanf:"backend"`
	Key          string `koanf:"key"`
	KeySuffix    string `koanf:"key_suffix"`
	Package      string `koanf:"package"`
	CustomObject string `koanf:"custom_object"`
	CustomKey    string `koanf:"custom_key"`
	Value        string `koanf:"value"`

	File     BaselineFile     `koanf:"file"`
	Postgres BaselinePostgres `koanf:"postgres"`
	S3       BaselineS3       `koanf:"s3"`
}

type BaselineFile struct {
	Path string `koanf:"path"`
}

type BaselinePostgres struct {
	DSN         string `koanf:"dsn"`
	Table       string `koanf:"table"`
	NameColumn  string `koanf:"name_column"`
	ValueColumn string `koanf:"value_column"`
}

type BaselineS3 struct {
	Endpoint  string `koanf:"endpoint"`
	Region    string `koanf:"region"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Bucket    string `koanf:"bucket"`
	Prefix    string `koanf:"prefix"`
	UseSSL    bool   `koanf:"use_ssl"`
}

type Run struct {
	Strict        bool `koanf:"strict"`
	StatCacheSize int  `koanf:"stat_cache_size"`
}

type Output struct {
	Format string `koanf:"format"`
}

// DeltaFolder returns the configured delta folder, or an empty string when
// it derives from the source folder
func (c *Config) DeltaFolder() string {
	if c.Delta.Folder != "" {
		return c.Delta.Folder
	}
	if c.Delta.Suffix == "" {
		return ""
	}
	return c.Source.Folder + c.Delta.Suffix
}

// BaselineSettings maps the baseline section onto backend settings
func (c *Config) BaselineSettings() baseline.Settings {
	b := c.Baseline
	return baseline.Settings{
		Backend: b.Backend,
		Key: baseline.KeySpec{
			Key:          b.Key,
			Suffix:       b.KeySuffix,
			Package:      b.Package,
			CustomObject: b.CustomObject,
			CustomKey:    b.CustomKey,
		},
		Value:    b.Value,
		FilePath: b.File.Path,
		Postgres: baseline.PostgresConfig{
			DSN:         b.Postgres.DSN,
			Table:       b.Postgres.Table,
			NameColumn:  b.Postgres.NameColumn,
			ValueColumn: b.Postgres.ValueColumn,
		},
		S3: baseline.S3Config{
			Endpoint:  b.S3.Endpoint,
			Region:    b.S3.Region,
			AccessKey: b.S3.AccessKey,
			SecretKey: b.S3.SecretKey,
			Bucket:    b.S3.Bucket,
			Prefix:    b.S3.Prefix,
			UseSSL:    b.S3.UseSSL,
		},
	}
}

// AssemblerOptions returns the run options. dryRun comes from the command line only.
func (c *Config) AssemblerOptions(dryRun bool) assembler.Options {
	return assembler.Options{
		DryRun:         dryRun,
		Strict:         c.Run.Strict,
		ExcludeRenames: c.Diff.ExcludeRenames,
		StatCacheSize:  c.Run.StatCacheSize,
	}
}
