package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play a session between bots"`
	Simulate SimulateCmd      `cmd:"" help:"Play many seeded sessions and summarise the results"`
	History  HistoryCmd       `cmd:"" help:"Show hands and totals from a store"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerengine"),
		kong.Description("Rule-pluggable poker engine for hold'em, omaha and five card draw"),
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
