package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/queryforge/queryforge/ai"
	"github.com/queryforge/queryforge/api"
	"github.com/queryforge/queryforge/applog"
	"github.com/queryforge/queryforge/config"
	"github.com/queryforge/queryforge/db"
	"github.com/queryforge/queryforge/pipeline"
)

var (
	serveAddr    string
	serveVerbose bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8000", "listen address")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := newLogger(serveVerbose)
	ctx := context.Background()

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	chain, err := ai.NewChainFromConfig(appCfg.AI)
	if err != nil {
		return err
	}
	log.Info("provider chain configured", "chain", chain.Name())

	database, err := db.Connect(ctx, config.LoadDB())
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	defer database.Close()
	defer applog.Close()

	pipe := pipeline.New(chain, database, database)
	server := api.NewServer(pipe, database, database, log)

	httpServer := &http.Server{
		Addr:    serveAddr,
		Handler: server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP API listening", "addr", serveAddr)
		applog.Event("SERVE", "listening on %s", serveAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}
