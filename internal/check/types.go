// Package check validates a documentation site as a whole: the site
// configuration, every page's frontmatter against its collection schema, the
// sidebar against the discovered pages, and internal links between pages.
package check

import (
	"github.com/sage-code/ara-docs/internal/collection"
	"github.com/sage-code/ara-docs/internal/docs"
	"github.com/sage-code/ara-docs/internal/sidebar"
	"github.com/sage-code/ara-docs/internal/site"
)

// Severity indicates the importance level of an issue.
type Severity int

const (
	// SeverityInfo is informational only.
	SeverityInfo Severity = iota
	// SeverityWarning should be fixed but does not block builds.
	SeverityWarning
	// SeverityError blocks builds.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue is a single problem found while checking the site.
type Issue struct {
	Path        string   // Page path relative to the content directory, or a config field
	Severity    Severity // Issue severity level
	Rule        string   // Rule identifier (e.g., "sidebar-link")
	Message     string   // Brief description of the issue
	Explanation string   // Detailed explanation with context
	Fix         string   // Suggested fix
}

// Result contains all issues found during a check.
type Result struct {
	Issues     []Issue
	PagesTotal int
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool { return r.ErrorCount() > 0 }

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool { return r.WarningCount() > 0 }

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int { return r.count(SeverityWarning) }

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// ExitCode returns 2 when errors were found, 1 for warnings only and 0 otherwise.
func (r *Result) ExitCode() int {
	switch {
	case r.HasErrors():
		return 2
	case r.HasWarnings():
		return 1
	default:
		return 0
	}
}

// ByRule returns the issues reported by the named rule.
func (r *Result) ByRule(rule string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Rule == rule {
			out = append(out, issue)
		}
	}
	return out
}

// Input is everything the rules look at.
type Input struct {
	// ProjectRoot resolves custom CSS paths; the custom-css rule is skipped when empty.
	ProjectRoot string
	Site        *site.Config
	Collections collection.Collections
	Index       *docs.Index
	// Tree is resolved from Site and Index when nil.
	Tree *sidebar.Tree
}

// Rule checks one aspect of the site.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check returns the issues found in the input.
	Check(in *Input) []Issue
}
