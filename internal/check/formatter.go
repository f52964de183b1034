package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats check results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, contentDir string) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result, contentDir string) error {
	if _, err := fmt.Fprintf(w, "Checking documentation in: %s\n", contentDir); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}

	for _, issue := range result.Issues {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := f.formatIssue(w, issue); err != nil {
			return err
		}
	}
	if len(result.Issues) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Results:\n  %d pages checked\n", result.PagesTotal); err != nil {
		return err
	}
	if n := result.ErrorCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d error%s (blocks build)\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if n := result.WarningCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d warning%s (should fix)\n", n, pluralize(n)); err != nil {
			return err
		}
	}

	var final string
	switch {
	case result.HasErrors():
		final = "❌ Documentation has errors that will prevent the site build."
	case result.HasWarnings():
		final = "⚠️  Documentation has warnings. Consider fixing before commit."
	default:
		final = "✨ All documentation passes checks!"
	}
	_, err := fmt.Fprintf(w, "\n%s\n", final)
	return err
}

func (f *TextFormatter) formatIssue(w io.Writer, issue Issue) error {
	var icon string
	switch issue.Severity {
	case SeverityError:
		icon = "✗"
	case SeverityWarning:
		icon = "⚠"
	default:
		icon = "ℹ"
	}

	if _, err := fmt.Fprintf(w, "%s %s [%s]\n", icon, issue.Path, issue.Rule); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %s: %s\n", issue.Severity, issue.Message); err != nil {
		return err
	}
	if issue.Explanation != "" {
		for line := range strings.SplitSeq(strings.TrimSpace(issue.Explanation), "\n") {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	if issue.Fix != "" {
		if _, err := fmt.Fprintf(w, "  Fix: %s\n", issue.Fix); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	ContentDir   string      `json:"content_dir"`
	PagesTotal   int         `json:"pages_total"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	Path        string `json:"path"`
	Severity    string `json:"severity"`
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	Explanation string `json:"explanation,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, contentDir string) error {
	output := JSONOutput{
		ContentDir:   contentDir,
		PagesTotal:   result.PagesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			Path:        issue.Path,
			Severity:    issue.Severity.String(),
			Rule:        issue.Rule,
			Message:     issue.Message,
			Explanation: issue.Explanation,
			Fix:         issue.Fix,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the formatter for format ("json" or text).
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
