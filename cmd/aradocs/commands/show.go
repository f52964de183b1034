package commands

import (
	"context"
	"encoding/json"

	"github.com/sage-code/ara-docs/internal/pipeline"
	"github.com/sage-code/ara-docs/internal/sidebar"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

func (s *ShowCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	st, _, err := pipeline.New(cfg).Resolve(context.Background())
	if err != nil {
		return err
	}
	if s.Format == "json" {
		enc := json.NewEncoder(root.Stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(st.Tree)
	}
	return sidebar.WriteText(root.Stdout(), st.Tree)
}
