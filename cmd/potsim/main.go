package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/potsim/cmd/potsim/shared"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Debug     bool   `help:"Enable debug logging"`
	LogFormat string `name:"log-format" enum:"text,logfmt" default:"text" help:"Log output format (text or logfmt)"`
	NoColor   bool   `name:"no-color" env:"NO_COLOR" help:"Disable colored output"`
}

// Logger builds the stderr logger selected by --log-format
func (g *Globals) Logger() *log.Logger {
	if g.LogFormat == "logfmt" {
		return shared.SetupStructuredLogger(g.Debug)
	}
	return shared.SetupLogger(g.Debug)
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run a Monte Carlo simulation of the coin pot game"`
	Report   ReportCmd        `cmd:"" help:"Chart the distributions of a stored simulation"`
	Runs     RunsCmd          `cmd:"" help:"List the runs recorded in an archive"`
	Config   ConfigCmd        `cmd:"" help:"Work with configuration files"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("potsim"),
		kong.Description("Monte Carlo simulator for the coin pot dice game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
