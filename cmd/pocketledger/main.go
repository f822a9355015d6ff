// Command pocketledger keeps a personal income and expense ledger.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"pocketledger/internal/cli"
)

func main() {
	// Load .env before reading configuration from the environment.
	cli.LoadEnvFile()

	app := cli.NewApp(os.Stdin, os.Stdout, os.Stderr)
	app.RegisterFlags(flag.CommandLine)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, app)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
