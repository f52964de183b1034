package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/sage-code/ara-docs/internal/site"
)

// PresetsCmd implements the 'presets' command.
type PresetsCmd struct{}

func (p *PresetsCmd) Run(_ *Global, root *CLI) error {
	tw := tabwriter.NewWriter(root.Stdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tTITLE\tGROUPS\tLOCALES")
	for _, name := range site.PresetNames() {
		cfg, err := site.Preset(name)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", name, cfg.Title, len(cfg.Sidebar), len(cfg.Locales))
	}
	return tw.Flush()
}
