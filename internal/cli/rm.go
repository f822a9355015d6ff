package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
)

type rmCmd struct {
	app *App
	yes bool
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete transactions" }
func (*rmCmd) Usage() string {
	return `pocketledger rm [-y] <id>...

  Deletes the given transactions, asking for confirmation for each one.
  Unknown ids are ignored.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation.")
}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return c.app.fail(usagef("rm needs at least one transaction id"))
	}
	ids := make([]int64, 0, f.NArg())
	for _, arg := range f.Args() {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return c.app.fail(usagef("invalid transaction id %q", arg))
		}
		ids = append(ids, id)
	}

	s, err := c.app.openService(ctx, c.app.confirmerFor(c.yes))
	if err != nil {
		return c.app.fail(err)
	}
	defer s.close()

	for _, id := range ids {
		removed, err := s.svc.Delete(ctx, id)
		if err != nil {
			return c.app.fail(err)
		}
		if removed {
			fmt.Fprintf(c.app.Out, "Deleted transaction %d\n", id)
		}
	}
	return subcommands.ExitSuccess
}
