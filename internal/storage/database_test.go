package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuriqa/internal/config"
	"nuriqa/internal/fixtures"
)

func TestPostgresDSNFromFixture(t *testing.T) {
	cfg := fixtures.TestAppConfig()
	cfg.Postgres.User = ""
	cfg.Postgres.SSLMode = ""
	assert.Equal(t, "host=localhost port=5432 dbname=test_nuri_qa_db", PostgresDSN(cfg.Postgres))
}

func TestPostgresDSNQuoting(t *testing.T) {
	dsn := PostgresDSN(config.PostgresConfig{
		Host:     "db",
		Port:     6543,
		DBName:   "qa",
		User:     "nuri",
		Password: `it's a \secret`,
		SSLMode:  "require",
	})
	assert.Equal(t, `host=db port=6543 dbname=qa user=nuri password='it\'s a \\secret' sslmode=require`, dsn)
}

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := Open(context.Background(), "sqlite3", nil, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE probe (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO probe (id) VALUES (1)`)
	require.NoError(t, err)
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM probe`).Scan(&n))
	assert.Equal(t, 1, n)
	require.NoError(t, Ping(context.Background(), db))
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()
	_, err := Open(ctx, "sqlite3", nil, "")
	require.Error(t, err)
	_, err = Open(ctx, "mysql", fixtures.TestAppConfig(), "")
	require.ErrorContains(t, err, "unsupported driver")
	_, err = Open(ctx, "postgres", nil, "")
	require.Error(t, err)
}

func TestOpenPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run postgres-backed storage tests")
	}
	db, err := Open(context.Background(), "postgres", fixtures.TestAppConfig(), dsn)
	require.NoError(t, err)
	defer db.Close()
	var one int
	require.NoError(t, db.QueryRow(`SELECT 1`).Scan(&one))
	assert.Equal(t, 1, one)
}
