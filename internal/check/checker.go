package check

import (
	"log/slog"
	"sort"

	"github.com/sage-code/ara-docs/internal/collection"
	"github.com/sage-code/ara-docs/internal/logfields"
	"github.com/sage-code/ara-docs/internal/sidebar"
)

// Checker runs a fixed set of rules.
type Checker struct {
	rules []Rule
}

// DefaultRules returns the rules run by NewChecker when none are given.
func DefaultRules() []Rule {
	return []Rule{
		&ConfigRule{},
		&SchemaRule{Collection: collection.DocsCollection},
		&SidebarLinkRule{},
		&SidebarDirectoryRule{},
		&ContentLinkRule{},
		&CustomCSSRule{},
	}
}

// NewChecker creates a checker with the given rules, or DefaultRules.
func NewChecker(rules ...Rule) *Checker {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Checker{rules: rules}
}

// Rules returns the rule names in run order.
func (c *Checker) Rules() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name()
	}
	return names
}

// Run applies every rule. Issues are ordered by rule, then path.
func (c *Checker) Run(in *Input) *Result {
	if in.Collections == nil {
		in.Collections = collection.Default()
	}
	if in.Tree == nil && in.Site != nil {
		tree := sidebar.Resolve(in.Site, in.Index)
		in.Tree = &tree
	}

	result := &Result{Issues: []Issue{}}
	if in.Index != nil {
		result.PagesTotal = in.Index.Len()
	}
	for _, rule := range c.rules {
		issues := rule.Check(in)
		sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
		result.Issues = append(result.Issues, issues...)
		if len(issues) > 0 {
			slog.Debug("Check rule reported issues", slog.String("rule", rule.Name()), logfields.Count(len(issues)))
		}
	}
	return result
}
