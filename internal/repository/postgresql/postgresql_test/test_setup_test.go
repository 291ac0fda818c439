package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/horilla-hris/hris-bulk-go/internal/pkg/database"
	"github.com/horilla-hris/hris-bulk-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// fixtureSchema mirrors the HRMS tables the bulk tests touch.
const fixtureSchema = `
	CREATE TABLE IF NOT EXISTS leave_holidays (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		start_date DATE NOT NULL,
		recurring  BOOLEAN NOT NULL DEFAULT FALSE,
		company_id TEXT,
		is_active  BOOLEAN NOT NULL DEFAULT TRUE
	);
	CREATE TABLE IF NOT EXISTS leave_requests (
		id          BIGSERIAL PRIMARY KEY,
		employee_id TEXT NOT NULL,
		leave_type  TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'requested',
		is_active   BOOLEAN NOT NULL DEFAULT TRUE
	);
`

type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL, skipping the test when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err, "failed to connect to test database")

	setup := &TestDatabaseSetup{DB: db}
	_, err = db.Exec(context.Background(), fixtureSchema)
	require.NoError(t, err)
	require.NoError(t, postgresql.EnsureSelectionSchema(context.Background(), db))
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(setup.Close)
	return setup
}

func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"leave_holidays", "leave_requests", "selection_scopes"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
