package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/xpost/internal/cli"
	"github.com/dmitrijs2005/xpost/internal/logging"
)

// Build-time variables (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logging.NewTextLogger(os.Stderr, slog.LevelWarn)
	app := cli.NewApp(os.Stdin, os.Stdout, log)

	root := cli.NewRootCommand(app, version, commit, date)

	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", cli.UserMessage(err))
		return 1
	}
	return 0
}
