package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"pocketledger/internal/core"
)

type addCmd struct {
	app *App
	draftFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new transaction" }
func (*addCmd) Usage() string {
	return `pocketledger add -desc <description> -amount <amount> -type income|expense -category <category> [-date YYYY-MM-DD]

  Records a transaction. The date defaults to today.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.register(f, core.Today().String())
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := c.apply(core.Draft{})
	if err != nil {
		return c.app.fail(err)
	}

	s, err := c.app.openService(ctx, nil)
	if err != nil {
		return c.app.fail(err)
	}
	defer s.close()

	tx, err := s.svc.Add(ctx, d)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Added transaction %d: %s %s (%s)\n", tx.ID, tx.Description, core.FormatSigned(tx), tx.Category)
	return subcommands.ExitSuccess
}
