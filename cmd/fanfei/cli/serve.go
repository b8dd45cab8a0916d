package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/config"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/server"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/service"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/store"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the fanfei API server",
		Long:  "Start the HTTP server that exposes the public content APIs and the authenticated admin API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	cmd.Flags().IntP("port", "p", 8000, "HTTP listen port")
	cmd.Flags().String("host", "0.0.0.0", "HTTP listen host")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe() error {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging.Level)

	st, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	logger.Info("store opened", "driver", cfg.Database.Driver)

	authSvc := service.NewAuthService(st, cfg.Auth.JWTSecret, cfg.TokenTTL())

	// Point the operator at the bootstrap path when no account exists yet.
	count, err := st.CountAdmins(context.Background())
	if err != nil {
		logger.Warn("failed to count admin accounts", "error", err)
	} else if count == 0 {
		logger.Warn("no admin account found - POST /api/auth/register or run: fanfei admin create")
	}

	srv := server.New(cfg, st, authSvc, logger)

	fmt.Printf("→ fanfei listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Health: http://%s:%d/healthz\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()

	return srv.ListenAndServe()
}

// newLogger builds the process-wide slog logger at the configured level.
func newLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
