package testdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds individual database operations in tests.
const TestTimeout = 5 * time.Second

// URL environment variables, checked in order.
var urlEnvVars = []string{"TODOAPI_TEST_DATABASE_URL", "DATABASE_URL"}

var migrateOnce sync.Map // url -> *migration

type migration struct {
	once sync.Once
	err  error
}

// GetTestDatabaseURL returns the first configured test database URL.
func GetTestDatabaseURL() string {
	for _, name := range urlEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Pool connects to the test database, applies the migrations on first use
// and closes the pool when the test ends. The test is skipped when no
// database is configured.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("no test database configured, set TODOAPI_TEST_DATABASE_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err, "failed to create pool")
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx), "failed to ping test database")

	m, _ := migrateOnce.LoadOrStore(url, &migration{})
	mig := m.(*migration)
	mig.once.Do(func() { mig.err = Migrate(ctx, pool, t) })
	require.NoError(t, mig.err, "failed to apply migrations")

	return pool
}

// Migrate applies every embedded migration to the pool's database.
func Migrate(ctx context.Context, pool *pgxpool.Pool, t *testing.T) error {
	goose.SetLogger(&testGooseLogger{t: t})
	goose.SetBaseFS(postgres.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	if err := goose.UpContext(ctx, db, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, pool *pgxpool.Pool, fn func(t *testing.T, tx pgx.Tx)) {
	t.Helper()

	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			t.Logf("rollback failed: %v", err)
		}
	}()

	fn(t, tx)
}

// testGooseLogger sends goose output to the test log.
type testGooseLogger struct {
	t *testing.T
}

func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Logf(format, v...)
}

func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Errorf(format, v...)
}
