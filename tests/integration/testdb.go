// Package integration runs the storefront repositories and services against a
// real PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// postgres is the container shared by every test in the package. It is started
// and migrated on first use.
var postgres struct {
	once      sync.Once
	err       error
	container *tcpostgres.PostgresContainer
	cfg       config.DatabaseConfig
}

// TestDB is a connection to the migrated shared database
type TestDB struct {
	DB *gorm.DB
	t  *testing.T
}

// NewSharedTestDB opens a pool on the shared container through persistence.Open,
// the same path the server uses. Set TEST_DB_DEBUG to log statements.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	postgres.once.Do(func() { postgres.err = startPostgres() })
	require.NoError(t, postgres.err, "start postgres container")

	var sqlLog gormlogger.Interface = gormlogger.Discard
	if os.Getenv("TEST_DB_DEBUG") != "" {
		sqlLog = logger.NewGormLogger(zaptest.NewLogger(t), gormlogger.Info)
	}
	cfg := postgres.cfg
	db, err := persistence.Open(&cfg, sqlLog)
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { _ = db.Close() })

	return &TestDB{DB: db.DB, t: t}
}

func startPostgres() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("store"),
		tcpostgres.WithPassword("store"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	if err != nil {
		return fmt.Errorf("run container: %w", err)
	}
	postgres.container = container

	host, err := container.Host(ctx)
	if err != nil {
		return fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return fmt.Errorf("container port: %w", err)
	}
	postgres.cfg = config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "store",
		Password:        "store",
		DBName:          "storefront_test",
		SSLMode:         "disable",
		MaxOpenConns:    20,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5,
		ConnMaxIdleTime: 1,
	}

	db, err := persistence.Open(&postgres.cfg, nil)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	// Closing the migrator closes sqlDB as well.
	m, err := migration.NewFromFS(sqlDB, migrations.FS, zap.NewNop())
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

// CleanTables truncates every application table, leaving schema_migrations alone
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	require.NoError(tdb.t, tdb.DB.Raw(
		`SELECT tablename FROM pg_tables WHERE schemaname = 'public' AND tablename <> 'schema_migrations'`,
	).Scan(&tables).Error)
	if len(tables) == 0 {
		return
	}
	stmt := "TRUNCATE TABLE "
	for i, table := range tables {
		if i > 0 {
			stmt += ", "
		}
		stmt += fmt.Sprintf("%q", table)
	}
	require.NoError(tdb.t, tdb.DB.Exec(stmt+" CASCADE").Error)
}

// CleanupSharedContainer terminates the shared container. TestMain calls it
// after the run.
func CleanupSharedContainer() {
	if postgres.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = postgres.container.Terminate(ctx)
}
