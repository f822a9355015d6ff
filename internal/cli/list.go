package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"pocketledger/internal/core"
	"pocketledger/internal/present"
)

// reportCmd implements list and summary, which differ only in layout.
type reportCmd struct {
	app      *App
	name     string
	synopsis string
	layout   func(present.Summary) string
	filter   string
}

func (c *reportCmd) Name() string     { return c.name }
func (c *reportCmd) Synopsis() string { return c.synopsis }
func (c *reportCmd) Usage() string {
	return "pocketledger " + c.name + " [-filter all|income|expense]\n\n  " + c.synopsis + ".\n"
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "filter", "all", "Show all, income or expense transactions.")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := core.ParseFilter(c.filter)
	if err != nil {
		return c.app.fail(usageError{err})
	}

	s, err := c.app.openService(ctx, nil)
	if err != nil {
		return c.app.fail(err)
	}
	defer s.close()

	s.svc.SetFilter(filter)
	printMarkdown(c.app.Out, c.layout(s.svc.Summary()), c.app.Plain)
	return subcommands.ExitSuccess
}

func newListCmd(app *App) *reportCmd {
	return &reportCmd{app: app, name: "list", synopsis: "list transactions, newest first", layout: TransactionsMarkdown}
}

func newSummaryCmd(app *App) *reportCmd {
	return &reportCmd{app: app, name: "summary", synopsis: "show balance, transactions and expenses by category", layout: SummaryMarkdown}
}
