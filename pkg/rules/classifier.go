package rules

import (
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/arthur-debert/sfdelta/pkg/paths"
	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/rs/zerolog"
)

// Classifier applies a rule table to changed paths
type Classifier struct {
	rules  []Rule
	ctx    *Context
	logger zerolog.Logger
}

// NewClassifier creates a classifier using the default rules
func NewClassifier(fs types.FS, layout *paths.Layout) *Classifier {
	return NewClassifierWithRules(DefaultRules(), fs, layout)
}

// NewClassifierWithRules creates a classifier with a custom rule table
func NewClassifierWithRules(rules []Rule, fs types.FS, layout *paths.Layout) *Classifier {
	return &Classifier{
		rules:  rules,
		ctx:    &Context{FS: fs, Layout: layout},
		logger: logging.GetLogger("rules.classifier"),
	}
}

// Resolve maps a repository-relative changed path to its copy unit. Paths
// outside the source folder resolve to an excluded unit.
func (c *Classifier) Resolve(changed string) types.CopyUnit {
	rel, ok := c.ctx.Layout.RelToSource(changed)
	if !ok {
		c.logger.Debug().
			Str("path", changed).
			Str("source", c.ctx.Layout.Source()).
			Msg("Path is outside the source folder")
		return types.CopyUnit{
			Root:   paths.Normalize(changed),
			Kind:   types.KindExcluded,
			Rule:   "outside-source",
			Reason: "not inside the source folder",
		}
	}
	return c.ResolveRel(rel)
}

// ResolveRel maps a source-relative path to its copy unit. The first rule
// whose predicate matches wins.
func (c *Classifier) ResolveRel(rel string) types.CopyUnit {
	target := NewTarget(rel)
	for _, rule := range c.rules {
		if !rule.Match(c.ctx, target) {
			continue
		}
		unit := rule.Resolve(c.ctx, target)
		unit.Rule = rule.Name
		c.logger.Debug().
			Str("path", target.Rel).
			Str("rule", rule.Name).
			Str("kind", string(unit.Kind)).
			Str("root", unit.Root).
			Strs("extras", unit.Extras).
			Msg("Path matched rule")
		return unit
	}

	c.logger.Warn().Str("path", target.Rel).Msg("No rule matched, treating as plain file")
	return types.CopyUnit{Root: target.Rel, Kind: types.KindPlainFile, Rule: "fallback"}
}

// Classify returns the component kind of a repository-relative path
func (c *Classifier) Classify(changed string) (types.ComponentKind, types.BundleKind) {
	unit := c.Resolve(changed)
	return unit.Kind, unit.Bundle
}
