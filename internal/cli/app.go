package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"pocketledger/internal/amqp"
	"pocketledger/internal/backend"
	"pocketledger/internal/config"
	"pocketledger/internal/core"
	"pocketledger/internal/ledger"
	"pocketledger/internal/log"
	"pocketledger/internal/services"
)

// App is the state shared by every subcommand: configuration, standard
// streams and the global output flags.
type App struct {
	Config *config.Config
	Plain  bool

	In  io.Reader
	Out io.Writer
	Err io.Writer

	logger *log.Logger
	// confirmer overrides the terminal prompt, for tests.
	confirmer services.Confirmer
}

// NewApp loads configuration from the environment. Flags registered with
// RegisterFlags override it.
func NewApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{Config: config.Load(), In: in, Out: out, Err: errOut}
}

// RegisterFlags binds the global flags to the configuration.
func (a *App) RegisterFlags(fs *flag.FlagSet) {
	c := a.Config
	fs.StringVar(&c.DataBackend, "backend", c.DataBackend, "storage backend: file, memory or sqlite")
	fs.StringVar(&c.DataDir, "data-dir", c.DataDir, "directory of the file backend")
	fs.StringVar(&c.SQLiteDBPath, "db", c.SQLiteDBPath, "database path of the sqlite backend")
	fs.StringVar(&c.AMQPURL, "amqp-url", c.AMQPURL, "AMQP broker for change notifications, empty to disable")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&a.Plain, "plain", false, "print Markdown without terminal styling")
}

// Logger returns the process logger, creating it on first use.
func (a *App) Logger() *log.Logger {
	if a.logger == nil {
		a.logger = SetupLogger(a.Config.LogLevel, a.Err)
	}
	return a.logger
}

// openStore creates the configured persistent store.
func (a *App) openStore(ctx context.Context) (*backend.BackendResult, error) {
	if err := a.Config.Validate(); err != nil {
		return nil, err
	}
	cfg, err := backend.FromAppConfig(a.Config)
	if err != nil {
		return nil, err
	}
	return backend.NewFactory(a.Logger()).CreateBackend(ctx, cfg)
}

// openNotifier connects to the change feed when one is configured. A broker
// that cannot be reached only disables notifications.
func (a *App) openNotifier() (*amqp.Client, error) {
	if !a.Config.AMQPEnabled() {
		return nil, nil
	}
	return amqp.NewClient(a.Config.AMQPURL, a.Config.AMQPExchange, a.Config.AMQPRoutingKey, a.Logger())
}

// session is an opened ledger service with the resources behind it.
type session struct {
	svc   *services.LedgerService
	close func()
}

// openService opens the store, loads the ledger and wraps it in a service
// that asks confirm before destructive operations.
func (a *App) openService(ctx context.Context, confirm services.Confirmer) (*session, error) {
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	l, err := ledger.Open(ctx, store.Store, ledger.WithLogger(a.Logger()))
	if err != nil {
		store.Close()
		return nil, err
	}

	var notifier services.Notifier
	client, err := a.openNotifier()
	if err != nil {
		a.Logger().Warn("Failed to initialize AMQP client, continuing without notifications", log.FieldError, err)
	} else if client != nil {
		notifier = client
	}

	closeAll := func() {
		if client != nil {
			client.Close()
		}
		if err := store.Close(); err != nil {
			a.Logger().Error("Failed to close store", log.FieldError, err)
		}
	}
	return &session{svc: services.NewLedgerService(l, confirm, notifier, a.Logger()), close: closeAll}, nil
}

// confirmerFor returns the confirmer for an interactive command; yes skips
// the prompt.
func (a *App) confirmerFor(yes bool) services.Confirmer {
	switch {
	case yes:
		return services.AlwaysConfirm
	case a.confirmer != nil:
		return a.confirmer
	default:
		return NewPromptConfirmer(a.In, a.Err)
	}
}

// fail prints err and picks the exit status: usage errors for invalid
// input, failure for everything else.
func (a *App) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "Error: %v\n", err)
	if isUsageError(err) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

var validationErrors = []error{
	core.ErrInvalidAmount,
	core.ErrInvalidType,
	core.ErrInvalidFilter,
	core.ErrInvalidDate,
	core.ErrEmptyDescription,
	core.ErrEmptyCategory,
	core.ErrDescriptionTooLong,
	services.ErrNotFound,
}

func isUsageError(err error) bool {
	var u usageError
	if errors.As(err, &u) {
		return true
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// usageError marks bad command-line input.
type usageError struct{ error }

func (u usageError) Unwrap() error { return u.error }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}
