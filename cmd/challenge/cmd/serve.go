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

	"github.com/spf13/cobra"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/api"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/auth"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the challenge web API",
	Long: `Start the HTTP server exposing the challenge API and equity dashboard.

Example:
  challenge serve --config challenge.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger()

	svc, j, err := openService(cfg, log)
	if err != nil {
		return err
	}
	defer j.Close()

	if _, err := j.Seed(cfg.Account.StartBalance); err != nil {
		return fmt.Errorf("seed account: %w", err)
	}

	tokenTTL, err := cfg.Server.ParseTokenTTL()
	if err != nil {
		return err
	}
	authService := auth.NewService(cfg.Server.JWTSecret, tokenTTL)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewRouter(svc, j, authService, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-stop:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
