// Package markdown analyzes page bodies with goldmark: headings for title
// hints and link extraction for the content link check. It never renders HTML.
package markdown

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is one link-like construct found in a body.
type Link struct {
	Kind        LinkKind
	Destination string
}

// Heading is an ATX or setext heading.
type Heading struct {
	Level int
	Text  string
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

// Parse parses a body (frontmatter already removed) into a goldmark AST.
func Parse(body []byte) gmast.Node {
	return newMarkdown().Parser().Parse(text.NewReader(body))
}

// Headings returns all headings in document order.
func Headings(body []byte) []Heading {
	root := Parse(body)
	var out []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			out = append(out, Heading{Level: h.Level, Text: plainText(h, body)})
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return out
}

// FirstHeading returns the text of the first level-1 heading, or "".
func FirstHeading(body []byte) string {
	for _, h := range Headings(body) {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// ExtractLinks returns links in document order followed by reference
// definitions sorted by label.
func ExtractLinks(body []byte) []Link {
	ctx := parser.NewContext()
	root := newMarkdown().Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links
}

func plainText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return string(bytes.TrimSpace(buf.Bytes()))
}
