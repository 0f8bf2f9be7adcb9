package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

// newRootCmd assembles the todoapi command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "todoapi",
		Short:         "Todo API server",
		Long:          "todoapi serves the users, projects, todos and permission groups API\nand manages its PostgreSQL schema.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateSuperuserCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, rt *runtimeDeps) error {
				app, err := newApplication(ctx, rt.cfg, rt.logger, rt.pool)
				if err != nil {
					return err
				}
				return app.Run(ctx)
			})
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate {up|down|status|version}",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, rt *runtimeDeps) error {
				return runMigrations(ctx, rt.pool, args[0], rt.logger)
			})
		},
	}
}

func newCreateSuperuserCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an active superuser account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, rt *runtimeDeps) error {
				user, err := createSuperuser(ctx, rt.cfg, rt.pool, rt.logger, username, email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Superuser %q created with id %d.\n", user.Username, user.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login of the new superuser")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// runtimeDeps is what every command needs before doing its own work.
type runtimeDeps struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// withRuntime loads configuration, sets up logging, connects to the database
// and runs fn. The pool is closed when fn returns.
func withRuntime(ctx context.Context, fn func(context.Context, *runtimeDeps) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"redis_enabled", cfg.Redis.URL != "")

	pool, err := setupAppDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, &runtimeDeps{cfg: cfg, logger: l, pool: pool})
}
