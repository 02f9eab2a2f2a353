package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	domainerr "writings/internal/domain/errors"
)

var version = "dev"

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("writings"),
		kong.Description("Build a personal site from a directory of Markdown writings."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&Global{Logger: slog.Default()}, &cli)
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process status: 2 for configuration
// problems, 1 for anything else.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ve domainerr.ValidationError
	if errors.As(err, &ve) {
		slog.Error("invalid configuration", "error", err)
		return 2
	}
	slog.Error("command failed", "error", err)
	return 1
}
