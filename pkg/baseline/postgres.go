package baseline

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresConfig locates the settings table
type PostgresConfig struct {
	DSN         string
	Table       string
	NameColumn  string
	ValueColumn string
}

// PostgresSource reads markers from a settings table
type PostgresSource struct {
	db     *sql.DB
	query  string
	logger zerolog.Logger
}

// OpenPostgres connects with the pgx driver and verifies the connection
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresSource, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New(errors.ErrConfiguration, "postgres dsn is required")
	}
	query, err := BuildQuery(cfg.Table, cfg.NameColumn, cfg.ValueColumn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrBaselineLookup, "cannot open postgres connection")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrBaselineLookup, "cannot reach postgres")
	}
	return newPostgres(db, query), nil
}

// NewPostgres wraps an open database handle
func NewPostgres(db *sql.DB, table, nameColumn, valueColumn string) (*PostgresSource, error) {
	query, err := BuildQuery(table, nameColumn, valueColumn)
	if err != nil {
		return nil, err
	}
	return newPostgres(db, query), nil
}

func newPostgres(db *sql.DB, query string) *PostgresSource {
	return &PostgresSource{db: db, query: query, logger: logging.GetLogger("baseline.postgres")}
}

// Query returns the statement used for lookups
func (s *PostgresSource) Query() string {
	return s.query
}

func (s *PostgresSource) Lookup(ctx context.Context, key string) (string, bool, error) {
	s.logger.Debug().Str("query", s.query).Str("key", key).Msg("Querying baseline")

	var value sql.NullString
	err := s.db.QueryRowContext(ctx, s.query, key).Scan(&value)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrBaselineLookup, "baseline query for %s failed", key).
			WithDetail("key", key)
	}
	// a NULL value is a record without a marker
	return value.String, true, nil
}

// Close releases the connection pool
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// BuildQuery validates the identifiers and returns the lookup statement.
// table may be schema qualified.
func BuildQuery(table, nameColumn, valueColumn string) (string, error) {
	qTable, err := quoteQualified(table)
	if err != nil {
		return "", err
	}
	qName, err := quoteIdentifier(nameColumn)
	if err != nil {
		return "", err
	}
	qValue, err := quoteIdentifier(valueColumn)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 LIMIT 1", qValue, qTable, qName), nil
}

func quoteQualified(name string) (string, error) {
	parts := strings.Split(strings.TrimSpace(name), ".")
	if len(parts) > 2 {
		return "", errors.Newf(errors.ErrConfiguration, "invalid table name %q", name)
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		q, err := quoteIdentifier(p)
		if err != nil {
			return "", err
		}
		quoted[i] = q
	}
	return strings.Join(quoted, "."), nil
}

func quoteIdentifier(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !identifierPattern.MatchString(name) {
		return "", errors.Newf(errors.ErrConfiguration, "invalid identifier %q", name).
			WithDetail("identifier", name)
	}
	return `"` + name + `"`, nil
}
