package check

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sage-code/ara-docs/internal/markdown"
	"github.com/sage-code/ara-docs/internal/site"
)

// Rule names.
const (
	RuleConfig           = "config"
	RuleSchema           = "schema"
	RuleSidebarLink      = "sidebar-link"
	RuleSidebarDirectory = "sidebar-directory"
	RuleContentLink      = "content-link"
	RuleCustomCSS        = "custom-css"
)

// ConfigRule reports site configuration validation failures.
type ConfigRule struct{}

func (r *ConfigRule) Name() string { return RuleConfig }

func (r *ConfigRule) Check(in *Input) []Issue {
	if in.Site == nil {
		return []Issue{{Path: "site", Severity: SeverityError, Rule: r.Name(), Message: "no site configuration"}}
	}
	var issues []Issue
	for _, p := range in.Site.Problems() {
		issues = append(issues, Issue{
			Path:     p.Field,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  p.Message,
		})
	}
	return issues
}

// SchemaRule validates every page's frontmatter against a collection schema.
type SchemaRule struct {
	Collection string
}

func (r *SchemaRule) Name() string { return RuleSchema }

func (r *SchemaRule) Check(in *Input) []Issue {
	if in.Index == nil {
		return nil
	}
	var issues []Issue
	for _, p := range in.Index.Pages() {
		if p.ParseErr != nil {
			issues = append(issues, Issue{
				Path:        p.RelPath,
				Severity:    SeverityError,
				Rule:        r.Name(),
				Message:     "Frontmatter cannot be parsed",
				Explanation: p.ParseErr.Error(),
				Fix:         "Fix the YAML between the --- delimiters",
			})
			continue
		}
		errs, err := in.Collections.ValidatePage(r.Collection, p.Fields)
		if err != nil {
			return []Issue{{Path: r.Collection, Severity: SeverityError, Rule: r.Name(), Message: err.Error()}}
		}
		for _, fe := range errs {
			issues = append(issues, Issue{
				Path:     p.RelPath,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  fe.Error(),
			})
		}
	}
	return issues
}

// SidebarLinkRule reports manual sidebar links that resolve to no page.
type SidebarLinkRule struct{}

func (r *SidebarLinkRule) Name() string { return RuleSidebarLink }

func (r *SidebarLinkRule) Check(in *Input) []Issue {
	if in.Tree == nil || in.Index == nil {
		return nil
	}
	var issues []Issue
	for _, group := range in.Tree.Groups {
		for _, e := range group.Entries {
			if !e.Missing {
				continue
			}
			issues = append(issues, Issue{
				Path:     e.Link,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Sidebar link %q in group %q points at no page", e.Label, group.Label),
				Fix:      fmt.Sprintf("Create %s.md or fix the link", strings.Trim(e.Link, "/")),
			})
		}
	}
	return issues
}

// SidebarDirectoryRule reports autogenerate directories that are missing
// (error) or contain no visible page (warning).
type SidebarDirectoryRule struct{}

func (r *SidebarDirectoryRule) Name() string { return RuleSidebarDirectory }

func (r *SidebarDirectoryRule) Check(in *Input) []Issue {
	if in.Tree == nil || in.Index == nil {
		return nil
	}
	var issues []Issue
	for _, group := range in.Tree.Groups {
		if group.Directory == "" {
			continue
		}
		switch {
		case !in.Index.HasDirectory(group.Directory):
			issues = append(issues, Issue{
				Path:     group.Directory + "/",
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Sidebar group %q autogenerates from a missing directory", group.Label),
				Fix:      "Create the directory below the content directory",
			})
		case len(group.Entries) == 0:
			issues = append(issues, Issue{
				Path:        group.Directory + "/",
				Severity:    SeverityWarning,
				Rule:        r.Name(),
				Message:     fmt.Sprintf("Sidebar group %q has no visible pages", group.Label),
				Explanation: "Every page in the directory is hidden or a draft.",
			})
		}
	}
	return issues
}

// ContentLinkRule reports internal Markdown links that point at no page.
// Links to files with an extension are assets and are not checked.
type ContentLinkRule struct{}

func (r *ContentLinkRule) Name() string { return RuleContentLink }

func (r *ContentLinkRule) Check(in *Input) []Issue {
	if in.Index == nil {
		return nil
	}
	var issues []Issue
	for _, p := range in.Index.Pages() {
		for _, l := range markdown.ExtractLinks(p.Body) {
			if l.Kind == markdown.LinkKindImage || !site.IsInternalLink(l.Destination) {
				continue
			}
			target, _, _ := strings.Cut(l.Destination, "#")
			target, _, _ = strings.Cut(target, "?")
			if path.Ext(strings.TrimSuffix(target, "/")) != "" {
				continue
			}
			if _, ok := in.Index.Lookup(target); ok {
				continue
			}
			issues = append(issues, Issue{
				Path:     p.RelPath,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Broken internal link %s", l.Destination),
			})
		}
	}
	return issues
}

// CustomCSSRule reports custom CSS files missing from the project.
type CustomCSSRule struct{}

func (r *CustomCSSRule) Name() string { return RuleCustomCSS }

func (r *CustomCSSRule) Check(in *Input) []Issue {
	if in.Site == nil || in.ProjectRoot == "" {
		return nil
	}
	var issues []Issue
	for _, css := range in.Site.CustomCSS {
		if strings.TrimSpace(css) == "" {
			continue
		}
		full := filepath.Join(in.ProjectRoot, filepath.FromSlash(css))
		if _, err := os.Stat(full); errors.Is(err, os.ErrNotExist) {
			issues = append(issues, Issue{
				Path:     css,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  "Custom CSS file not found",
				Fix:      "Create " + css + " or remove it from customCss",
			})
		}
	}
	return issues
}
