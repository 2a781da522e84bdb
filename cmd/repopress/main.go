// Command repopress serves the repository documentation API: structure
// listings and PDF generation for GitHub repositories.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/custodia-labs/repopress/internal/config"
	githubconn "github.com/custodia-labs/repopress/internal/connectors/github"
	"github.com/custodia-labs/repopress/internal/core/services"
	"github.com/custodia-labs/repopress/internal/logger"
	"github.com/custodia-labs/repopress/internal/render/highlight"
	"github.com/custodia-labs/repopress/internal/render/pdf"
	"github.com/custodia-labs/repopress/internal/server"
)

// shutdownTimeout bounds connection draining on exit.
const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		port       int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "repopress",
		Short: "HTTP service rendering GitHub repositories as PDF documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath, port, verbose)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.toml")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(ctx context.Context, configPath string, port int, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	log, err := logger.New(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	client := githubconn.NewClient(cfg.GitHub.Token)
	host := githubconn.NewHost(client, log)
	renderer := pdf.New(highlight.New(), log)
	docs := services.NewDocuments(host, renderer, log)
	api := server.New(docs, log, cfg.Server.StaticDir)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.Handler(),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("authenticated", cfg.GitHub.Token != ""))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
