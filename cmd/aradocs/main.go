package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sage-code/ara-docs/cmd/aradocs/commands"
	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
	"github.com/sage-code/ara-docs/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cli := &commands.CLI{}
	parser, err := kong.New(cli,
		kong.Name("aradocs"),
		kong.Description("Build, check and watch the ARA documentation site."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)
	if err != nil {
		slog.Error("Failed to create CLI parser", "error", err)
		return 10
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	err = ctx.Run(&commands.Global{Logger: slog.Default()}, cli)
	if err == nil {
		return 0
	}
	var exit *commands.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(os.Stderr, err)
}
