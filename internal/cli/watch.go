package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"pocketledger/internal/amqp"
)

type watchCmd struct {
	app *App
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "print ledger change notifications" }
func (*watchCmd) Usage() string {
	return `pocketledger watch

  Follows the change feed on the configured AMQP broker until interrupted.
`
}

func (*watchCmd) SetFlags(*flag.FlagSet) {}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.Config.Validate(); err != nil {
		return c.app.fail(err)
	}
	client, err := c.app.openNotifier()
	if err != nil {
		return c.app.fail(err)
	}
	if client == nil {
		return c.app.fail(usagef("watch needs an AMQP broker, set AMQP_URL or -amqp-url"))
	}
	defer client.Close()

	ctx, cancel := GracefulShutdown(ctx, c.app.Logger())
	defer cancel()

	err = client.ConsumeChanges(ctx, func(m *amqp.LedgerChangedMessage) error {
		_, err := fmt.Fprintln(c.app.Out, formatChange(m))
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return c.app.fail(err)
	}
	return subcommands.ExitSuccess
}

func formatChange(m *amqp.LedgerChangedMessage) string {
	line := fmt.Sprintf("%s rev=%d %s", m.Timestamp.Local().Format("15:04:05"), m.Revision, m.Operation)
	if m.ID != 0 {
		line += fmt.Sprintf(" id=%d", m.ID)
	}
	return line + fmt.Sprintf(" (%d transactions)", m.Count)
}
