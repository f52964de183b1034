package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sage-code/ara-docs/internal/config"
	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
	"github.com/sage-code/ara-docs/internal/pipeline"
	"github.com/sage-code/ara-docs/internal/render"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string   `short:"o" help:"Output directory; overrides output.directory"`
	Format []string `short:"f" help:"Output formats; overrides output.formats (json, yaml, astro, hugo)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, report, err := pipeline.New(cfg).Build(ctx)
	if err != nil {
		return err
	}
	out := root.Stdout()
	_, _ = fmt.Fprintf(out, "Built %d page%s in %s (%s)\n", report.Pages, plural(report.Pages), report.Duration().Round(time.Millisecond), report.Outcome)
	for _, o := range report.Outputs {
		_, _ = fmt.Fprintf(out, "  %s\n", o)
	}
	return nil
}

func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if len(b.Format) > 0 {
		for _, f := range b.Format {
			if _, err := render.WriterFor(f); err != nil {
				return derrors.WrapError(err, derrors.CategoryValidation, "invalid output format").Build()
			}
		}
		cfg.Output.Formats = b.Format
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
