// Package cli wires configuration, storage and the ledger service into the
// pocketledger subcommands.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pocketledger/internal/log"
)

// SetupLogger builds the process logger at the configured level, writing to
// out, and makes it the slog default. An unknown level falls back to info.
func SetupLogger(level string, out io.Writer) *log.Logger {
	lvl, _ := log.ParseLevel(level)
	logger := log.New(log.Config{Level: lvl, Component: log.ComponentCLI, Output: out})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. A missing file is
// not an error.
func LoadEnvFile(paths ...string) {
	_ = godotenv.Load(paths...)
}

// GracefulShutdown returns a context cancelled on SIGINT or SIGTERM, and
// logs which signal arrived.
func GracefulShutdown(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
