package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "SFDELTA_"

// ProjectFiles are looked up, in order, in the working directory
var ProjectFiles = []string{".sfdelta.toml", "sfdelta.toml", ".sfdelta.yaml", ".sfdelta.yml"}

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded defaults, written out by the genconfig command
func DefaultsContent() string {
	return string(defaultConfig)
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions locate the project file
type LoadOptions struct {
	// WorkDir is searched for ProjectFiles
	WorkDir string
	// File is an explicit configuration file; it must exist
	File string
	// Overrides are applied last, keyed by dotted path (e.g. "run.strict")
	Overrides map[string]interface{}
}

// Load resolves the configuration: embedded defaults, then the project
// file, then SFDELTA_ environment variables, then overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	known := knownKeys(k.Keys())

	// 2. Project file
	path, err := projectFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded project config")
	}

	// 3. Env vars. Only names that map onto a known key are taken, so the
	// env baseline backend's SFDELTA_BASELINE_<KEY> variables are left alone.
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return known[strings.ToLower(strings.TrimPrefix(s, EnvPrefix))]
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// knownKeys maps the env form of each key (dots as underscores) to the key
func knownKeys(keys []string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, key := range keys {
		m[strings.ReplaceAll(key, ".", "_")] = key
	}
	return m
}

// parserFor picks the parser from the file extension, TOML by default
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func projectFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", opts.File).
				WithDetail("path", opts.File)
		}
		return opts.File, nil
	}

	dir := opts.WorkDir
	if dir == "" {
		dir = "."
	}
	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}
