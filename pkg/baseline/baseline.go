// Package baseline looks up the recorded deploy marker a delta is computed
// against. Several stores are supported; all implement types.BaselineSource.
package baseline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/types"
)

// Backend names
const (
	BackendEnv      = "env"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendStatic   = "static"
)

// Backends lists the supported backend names
var Backends = []string{BackendEnv, BackendFile, BackendPostgres, BackendS3, BackendStatic}

// Settings selects and configures a backend
type Settings struct {
	Backend string
	Key     KeySpec

	// Value is the marker used by the static backend
	Value string
	// FilePath is the state file of the file backend, relative to the
	// working directory unless absolute
	FilePath string

	Postgres PostgresConfig
	S3       S3Config
}

// Source is an opened backend plus the key to look up
type Source struct {
	types.BaselineSource
	Key     string
	Backend string

	closer func() error
}

// Close releases backend resources
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Open validates settings and opens the selected backend. Configuration
// errors are reported before any connection is made.
func Open(ctx context.Context, settings Settings, fs types.FS, workDir string) (*Source, error) {
	if err := settings.Key.Validate(); err != nil {
		return nil, err
	}

	backend := strings.ToLower(strings.TrimSpace(settings.Backend))
	if backend == "" {
		backend = BackendEnv
	}
	src := &Source{Key: settings.Key.LookupKey(), Backend: backend}

	switch backend {
	case BackendEnv:
		src.BaselineSource = NewEnv()

	case BackendFile:
		src.BaselineSource = NewFile(fs, settings.StatePath(workDir))

	case BackendStatic:
		if strings.TrimSpace(settings.Value) == "" {
			return nil, errors.New(errors.ErrConfiguration, "static backend requires a baseline value")
		}
		src.BaselineSource = NewStatic(settings.Value)

	case BackendPostgres:
		cfg, err := settings.ResolvedPostgres()
		if err != nil {
			return nil, err
		}
		pg, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		src.BaselineSource = pg
		src.closer = pg.Close

	case BackendS3:
		s3, err := NewS3(settings.S3)
		if err != nil {
			return nil, err
		}
		src.BaselineSource = s3

	default:
		return nil, errors.Newf(errors.ErrConfiguration, "unknown baseline backend %q", settings.Backend).
			WithDetail("supported", Backends)
	}
	return src, nil
}

// LookupMarker looks up the configured key
func (s *Source) LookupMarker(ctx context.Context) (string, bool, error) {
	return s.Lookup(ctx, s.Key)
}

// StatePath returns the file backend's state file, resolved against workDir
func (settings Settings) StatePath(workDir string) string {
	p := settings.FilePath
	if p == "" {
		p = DefaultStateFile
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(workDir, p)
	}
	return p
}

// ResolvedPostgres fills unset table and columns from the key spec
func (settings Settings) ResolvedPostgres() (PostgresConfig, error) {
	cfg := settings.Postgres
	if cfg.Table == "" {
		obj, err := settings.Key.Object()
		if err != nil {
			return cfg, err
		}
		cfg.Table = obj
	}
	if cfg.NameColumn == "" {
		cfg.NameColumn = NameField
	}
	if cfg.ValueColumn == "" {
		col, err := settings.Key.ValueColumn()
		if err != nil {
			return cfg, err
		}
		cfg.ValueColumn = col
	}
	return cfg, nil
}
