package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type clearCmd struct {
	app *App
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete every transaction" }
func (*clearCmd) Usage() string {
	return `pocketledger clear [-y]

  Deletes all transactions after confirmation.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation.")
}

func (c *clearCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.app.openService(ctx, c.app.confirmerFor(c.yes))
	if err != nil {
		return c.app.fail(err)
	}
	defer s.close()

	done, err := s.svc.Clear(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	if done {
		fmt.Fprintln(c.app.Out, "All transactions deleted.")
	} else {
		fmt.Fprintln(c.app.Out, "Clear cancelled.")
	}
	return subcommands.ExitSuccess
}
