package postgres

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/KnightlyTreasures_Go/internal/database"
)

// shopTables are truncated between tests
const shopTables = "purchases, reservations, honor_scores, world_state, characters"

// fixture is the migrated container shared by the package's integration tests
type fixture struct {
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
}

var (
	shared     *fixture
	skipReason = "database not available"
)

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		skipReason = "short mode"
	} else {
		f, err := startFixture(context.Background())
		if err != nil {
			slog.Warn("Postgres fixture unavailable, integration tests will skip", "error", err)
			skipReason = err.Error()
		}
		shared = f
	}

	code := m.Run()
	shared.close()
	os.Exit(code)
}

func startFixture(ctx context.Context) (f *fixture, err error) {
	// testcontainers panics when no Docker socket exists
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, fmt.Errorf("docker: %v", r)
		}
	}()

	c, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("shop_it"),
		postgres.WithUsername("dm"),
		postgres.WithPassword("dm"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}
	f = &fixture{container: c}

	connStr, err := c.ConnectionString(ctx, "sslmode=disable")
	if err == nil {
		f.pool, err = database.NewPool(ctx, database.PoolConfig{ConnString: connStr, MaxConns: 10})
	}
	if err == nil {
		err = database.Migrate(ctx, f.pool)
	}
	if err != nil {
		f.close()
		return nil, err
	}
	return f, nil
}

func (f *fixture) close() {
	if f == nil {
		return
	}
	if f.pool != nil {
		f.pool.Close()
	}
	if err := f.container.Terminate(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("Failed to terminate postgres container", "error", err)
	}
}

// newTestStore returns a store over freshly truncated tables
func newTestStore(t *testing.T) *Store {
	t.Helper()
	if shared == nil {
		t.Skipf("integration test: %s", skipReason)
	}
	_, err := shared.pool.Exec(context.Background(), "TRUNCATE "+shopTables)
	require.NoError(t, err)
	return &Store{queries: queries{db: shared.pool}, pool: shared.pool}
}
