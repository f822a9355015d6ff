package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"pocketledger/internal/ledger"
)

type exportCmd struct {
	app    *App
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the stored ledger as JSON" }
func (*exportCmd) Usage() string {
	return `pocketledger export [-o <file>]

  Writes the persisted transaction list exactly as stored.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write to this file instead of standard output.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := c.app.openStore(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	defer store.Close()

	value, ok, err := store.Store.Get(ctx, ledger.StorageKey)
	if err != nil {
		return c.app.fail(err)
	}
	if !ok {
		value = "[]"
	}

	if c.output == "" {
		fmt.Fprintln(c.app.Out, value)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, []byte(value+"\n"), 0o644); err != nil {
		return c.app.fail(err)
	}
	return subcommands.ExitSuccess
}
