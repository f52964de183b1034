package commands

import (
	"fmt"

	"github.com/sage-code/ara-docs/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Preset string `short:"p" help:"Site preset referenced by the new file" default:"starlight"`
	Force  bool   `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Preset, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(root.Stdout(), "Wrote %s\n", root.Config)
	return nil
}
