package cli

import "github.com/google/subcommands"

// Register adds every pocketledger subcommand to c.
func Register(c *subcommands.Commander, a *App) {
	const ledger, admin = "ledger", "administration"
	c.Register(&addCmd{app: a}, ledger)
	c.Register(&editCmd{app: a}, ledger)
	c.Register(&rmCmd{app: a}, ledger)
	c.Register(newListCmd(a), ledger)
	c.Register(newSummaryCmd(a), ledger)
	c.Register(&clearCmd{app: a}, admin)
	c.Register(&exportCmd{app: a}, admin)
	c.Register(&serveCmd{app: a}, admin)
	c.Register(&watchCmd{app: a}, admin)
}
