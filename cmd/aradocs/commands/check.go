package commands

import (
	"context"
	"fmt"

	"github.com/sage-code/ara-docs/internal/check"
	"github.com/sage-code/ara-docs/internal/pipeline"
)

// CheckCmd implements the 'check' command.
//
// Exit codes: 0 clean, 1 warnings only, 2 errors.
type CheckCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	st, _, err := pipeline.New(cfg).Check(context.Background())
	if err != nil {
		return err
	}
	if err := check.NewFormatter(c.Format).Format(root.Stdout(), st.Check, cfg.ContentPath()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	if code := st.Check.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
