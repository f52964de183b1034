package sidebar

import (
	"fmt"
	"io"
	"strings"
)

// WriteText prints the tree as an indented outline, one entry per line.
func WriteText(w io.Writer, t Tree) error {
	return writeEntries(w, t.Groups, 0)
}

func writeEntries(w io.Writer, entries []Entry, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		var line string
		switch e.Kind {
		case KindGroup:
			line = indent + e.Label
			if e.Directory != "" {
				line += fmt.Sprintf(" [%s/]", e.Directory)
			}
		default:
			line = fmt.Sprintf("%s- %s -> %s", indent, e.Label, e.Link)
			if e.Badge != nil {
				line += fmt.Sprintf(" (%s)", e.Badge.Text)
			}
			if e.Missing {
				line += " MISSING"
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if err := writeEntries(w, e.Entries, depth+1); err != nil {
			return err
		}
	}
	return nil
}
