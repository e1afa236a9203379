package repositories

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"backoffice/migrations"
	"backoffice/pkg/database/postgresql"
)

var testPool *pgxpool.Pool

// TestMain connects to the database named by TEST_DATABASE_URL and applies
// the migrations. Integration tests skip themselves when the variable is
// unset, so the unit suite stays runnable without Postgres.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		if err := postgresql.Migrate(dsn, migrations.FS); err != nil {
			log.Fatalf("failed to migrate test database: %v", err)
		}

		pool, err := pgxpool.New(context.Background(), dsn)
		if err != nil {
			log.Fatalf("failed to connect to test database: %v", err)
		}
		testPool = pool
		defer pool.Close()
	}

	os.Exit(m.Run())
}

func requireTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	return testPool
}

func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE TABLE
			user_tokens, user_user_claims, user_claims, user_roles, roles,
			message_seens, messages,
			support_responses, support_requests,
			files, documents, folders,
			contents, content_groups,
			users
		RESTART IDENTITY CASCADE;`)
	require.NoError(t, err)
}

func seedUser(t *testing.T, pool *pgxpool.Pool, username string) uint64 {
	t.Helper()
	var id uint64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO users (username, first_name, last_name, display_name, password, serial_number, is_active)
		VALUES ($1, 'Test', 'User', 'Test User', 'x', $1 || '-serial', TRUE)
		RETURNING id`, username).Scan(&id)
	require.NoError(t, err)
	return id
}
