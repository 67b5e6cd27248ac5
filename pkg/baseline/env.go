package baseline

import (
	"context"
	"os"
	"strings"
	"unicode"

	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/rs/zerolog"
)

// EnvPrefix prefixes the variable a key is read from
const EnvPrefix = "SFDELTA_BASELINE_"

// EnvSource reads markers from environment variables
type EnvSource struct {
	prefix string
	lookup func(string) (string, bool)
	logger zerolog.Logger
}

// NewEnv returns a source reading SFDELTA_BASELINE_<KEY>
func NewEnv() *EnvSource {
	return NewEnvWithLookup(EnvPrefix, os.LookupEnv)
}

// NewEnvWithLookup returns a source using a custom prefix and lookup function
func NewEnvWithLookup(prefix string, lookup func(string) (string, bool)) *EnvSource {
	return &EnvSource{prefix: prefix, lookup: lookup, logger: logging.GetLogger("baseline.env")}
}

// VarName returns the environment variable holding key
func (s *EnvSource) VarName(key string) string {
	return s.prefix + strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, key)
}

func (s *EnvSource) Lookup(_ context.Context, key string) (string, bool, error) {
	name := s.VarName(key)
	value, ok := s.lookup(name)
	s.logger.Debug().Str("key", key).Str("var", name).Bool("found", ok).Msg("Looked up baseline")
	return value, ok, nil
}
