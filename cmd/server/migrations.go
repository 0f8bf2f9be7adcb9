package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

// migrationCommands are the goose operations exposed by `todoapi migrate`.
var migrationCommands = []string{"up", "down", "status", "version"}

// runMigrations runs a goose command against the embedded migrations.
func runMigrations(ctx context.Context, pool *pgxpool.Pool, command string, logger *slog.Logger) error {
	if !slices.Contains(migrationCommands, command) {
		return fmt.Errorf("unknown migration command %q (want one of %s)",
			command, strings.Join(migrationCommands, ", "))
	}

	log := logger.With("component", "migrations", "command", command)
	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetBaseFS(postgres.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close migration connection", "error", err)
		}
	}()

	start := time.Now()
	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, postgres.MigrationsDir)
	case "down":
		err = goose.DownContext(ctx, db, postgres.MigrationsDir)
	case "status":
		err = goose.StatusContext(ctx, db, postgres.MigrationsDir)
	case "version":
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			log.Info("current schema version", "version", version)
		}
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration command completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// slogGooseLogger adapts goose's logger to slog.
// Fatalf does not exit; goose errors are returned to the caller.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
