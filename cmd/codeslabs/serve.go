package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"codeslabs/infrastructure/argon"
	"codeslabs/infrastructure/audit"
	"codeslabs/infrastructure/cache"
	"codeslabs/infrastructure/content"
	httpserver "codeslabs/infrastructure/http"
	"codeslabs/infrastructure/mailer"
	"codeslabs/infrastructure/session"
	"codeslabs/infrastructure/sqlite"
)

const sessionPurgeInterval = time.Hour

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web site and admin console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().String("api-base-url", "", "external content API base URL; empty serves the embedded API")
	cmd.Flags().String("public-base-url", "", "public site URL printed on project sheets")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	cfg := a.cfg

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := sqlite.ApplyEmbeddedMigrations(ctx, db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	keys, err := argon.NewKeyVerifier(cfg.AdminKey)
	if err != nil {
		return fmt.Errorf("admin key: %w", err)
	}
	auditSvc := audit.NewService()
	store := content.NewStore(db, auditSvc)
	sessions := session.NewManager(db, cache.NewAdminSessionCache())
	notifier := mailer.New(cfg.Mail)
	if !notifier.Enabled() {
		slog.Warn("smtp not configured; contact messages are stored but not emailed")
	}

	server := httpserver.NewServer(httpserver.Options{
		Addr:          cfg.Addr,
		APIBaseURL:    cfg.APIBaseURL,
		PublicBaseURL: cfg.PublicBaseURL,
		AdminKey:      cfg.AdminKey,
	}, db, store, sessions, keys, auditSvc, notifier)
	if err := server.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	slog.Info("codeslabs listening", slog.String("addr", cfg.Addr), slog.String("api", apiMode(cfg.APIBaseURL)))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go server.PurgeSessions(ctx, sessionPurgeInterval)
	<-ctx.Done()

	if err := server.Stop(); err != nil {
		slog.Error("graceful shutdown error", slog.Any("err", err))
	}
	return nil
}

func apiMode(apiBaseURL string) string {
	if apiBaseURL == "" {
		return "embedded"
	}
	return apiBaseURL
}
