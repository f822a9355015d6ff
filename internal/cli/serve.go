package cli

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	apihttp "pocketledger/internal/http"
	"pocketledger/internal/log"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	app  *App
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger as a JSON API" }
func (*serveCmd) Usage() string {
	return `pocketledger serve [-port <port>]

  Serves the ledger over HTTP until interrupted. Destructive requests must
  carry confirm=true.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", c.app.Config.Port, "Port to listen on.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger := c.app.Logger()
	c.app.Config.Port = c.port
	ctx, cancel := GracefulShutdown(ctx, logger)
	defer cancel()

	s, err := c.app.openService(ctx, apihttp.RequestConfirmer)
	if err != nil {
		return c.app.fail(err)
	}
	defer s.close()

	srv := apihttp.NewServer(apihttp.ServerConfig{
		Addr:      ":" + c.port,
		CacheSize: c.app.Config.SummaryCacheSize,
		CacheTTL:  c.app.Config.SummaryCacheTTL,
	}, s.svc, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server starting", log.FieldPort, c.port, log.FieldBackend, c.app.Config.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return c.app.fail(err)
	}
	logger.Info("Server stopped")
	return subcommands.ExitSuccess
}
