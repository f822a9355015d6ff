package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"

	"pocketledger/internal/core"
	"pocketledger/internal/services"
)

type editCmd struct {
	app *App
	yes bool
	draftFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "replace a transaction with corrected values" }
func (*editCmd) Usage() string {
	return `pocketledger edit [-y] [-desc ...] [-amount ...] [-type ...] [-category ...] [-date ...] <id>

  Replaces transaction <id>. Fields not given keep their current value.
  The corrected transaction gets a new id.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.register(f, "")
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation.")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.fail(usagef("edit takes exactly one transaction id"))
	}
	id, err := strconv.ParseInt(f.Arg(0), 10, 64)
	if err != nil {
		return c.app.fail(usagef("invalid transaction id %q", f.Arg(0)))
	}

	s, err := c.app.openService(ctx, c.app.confirmerFor(c.yes))
	if err != nil {
		return c.app.fail(err)
	}
	defer s.close()

	current, ok := s.svc.Get(id)
	if !ok {
		return c.app.fail(fmt.Errorf("%w: %d", services.ErrNotFound, id))
	}
	d, err := c.apply(current.Draft())
	if err != nil {
		return c.app.fail(err)
	}

	tx, done, err := s.svc.Edit(ctx, id, d)
	if err != nil {
		return c.app.fail(err)
	}
	if !done {
		fmt.Fprintln(c.app.Out, "Edit cancelled.")
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(c.app.Out, "Replaced transaction %d with %d: %s %s (%s)\n", id, tx.ID, tx.Description, core.FormatSigned(tx), tx.Category)
	return subcommands.ExitSuccess
}
