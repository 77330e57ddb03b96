package main

import (
	"github.com/akasprzok/chartkit/internal/commands"
	"github.com/alecthomas/kong"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("chartkit"),
		kong.Description("Terminal charts with an interpolating crosshair."),
		kong.UsageOnError(),
	)
	cmdCtx, closer, err := cli.NewContext()
	ctx.FatalIfErrorf(err)

	// Call the Run() method of the selected parsed command.
	err = ctx.Run(cmdCtx)
	if err != nil {
		cmdCtx.Log.WithError(err).Debug("command failed")
	}
	closer.Close()
	ctx.FatalIfErrorf(err)
}
