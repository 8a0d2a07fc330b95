package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every subcommand.
type Globals struct {
	Config string `help:"Path to HCL config file" default:"railbird.hcl"`
	Debug  bool   `help:"Enable debug logging"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	EV       EVCmd            `cmd:"" help:"Evaluate all-in EV across hand logs"`
	Stats    StatsCmd         `cmd:"" help:"Show playing-style statistics"`
	Sessions SessionsCmd      `cmd:"" help:"Show per-player session results from ledgers"`
	Ranges   RangesCmd        `cmd:"" help:"Show a player's showdown range heatmap"`
	Report   ReportCmd        `cmd:"" help:"Write a markdown session report"`
	Tui      TuiCmd           `cmd:"" help:"Browse all-in confrontations interactively"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("railbird"),
		kong.Description("All-in EV and session analysis for exported poker hand logs"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
