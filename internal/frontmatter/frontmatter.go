// Package frontmatter splits documentation pages into YAML frontmatter and
// Markdown body, and serializes frontmatter deterministically.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the page opened a frontmatter block
// with `---` but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a parsed page.
type Document struct {
	// Fields holds the decoded frontmatter; empty (never nil) when the page has none.
	Fields map[string]any
	// Raw is the frontmatter text between the delimiters.
	Raw  []byte
	Body []byte
	// HasFrontmatter is false when the page does not start with `---`.
	HasFrontmatter bool
	Newline        string
}

// Parse splits content and decodes the YAML frontmatter.
func Parse(content []byte) (*Document, error) {
	raw, body, had, nl, err := Split(content)
	if err != nil {
		return nil, err
	}
	fields, err := ParseYAML(raw)
	if err != nil {
		return nil, err
	}
	return &Document{Fields: fields, Raw: raw, Body: body, HasFrontmatter: had, Newline: nl}, nil
}

// Bytes reassembles the page from Raw and Body.
func (d *Document) Bytes() []byte {
	if !d.HasFrontmatter {
		return d.Body
	}
	nl := d.Newline
	if nl == "" {
		nl = "\n"
	}
	delim := []byte("---" + nl)
	out := make([]byte, 0, 2*len(delim)+len(d.Raw)+len(d.Body))
	out = append(out, delim...)
	out = append(out, d.Raw...)
	out = append(out, delim...)
	return append(out, d.Body...)
}

// String returns the string field key, or "" when absent or not a string.
func (d *Document) String(key string) string {
	s, _ := d.Fields[key].(string)
	return s
}

// Split separates `---` delimited frontmatter from the body. When the content
// has no frontmatter, had is false and body is the whole input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, newline string, err error) {
	newline = detectNewline(content)

	open := []byte("---" + newline)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, newline, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, newline, nil
	}

	closeSeq := []byte(newline + "---" + newline)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF without trailing newline.
		tail := []byte(newline + "---")
		if bytes.HasSuffix(content, tail) {
			end := len(content) - len(tail) + len(newline)
			return content[start:end], []byte{}, true, newline, nil
		}
		return nil, nil, false, newline, ErrMissingClosingDelimiter
	}

	end := start + idx + len(newline)
	return content[start:end], content[start+idx+len(closeSeq):], true, newline, nil
}

// ParseYAML decodes raw frontmatter (without delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
