package postgresql_test

import (
	"context"
	"testing"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var holidayEntity = bulk.Entity{
	Module:        "leave",
	Name:          "holiday",
	Table:         "leave_holidays",
	FilterColumns: []string{"recurring", "company_id"},
	ActiveColumn:  "is_active",
	ExportColumns: []bulk.Column{{Name: "id", Header: "ID"}, {Name: "name", Header: "Name"}, {Name: "company_id", Header: "Company"}},
}

var requestEntity = bulk.Entity{
	Module:         "leave",
	Name:           "request",
	Table:          "leave_requests",
	StatusColumn:   "status",
	PendingStatus:  "requested",
	ApprovedStatus: "approved",
	RejectedStatus: "rejected",
}

func seedHolidays(t *testing.T, setup *TestDatabaseSetup) {
	t.Helper()
	_, err := setup.DB.Exec(context.Background(), `
		INSERT INTO leave_holidays (name, start_date, recurring, company_id) VALUES
		('New Year', '2026-01-01', TRUE, 'c1'),
		('Founders Day', '2026-03-10', FALSE, 'c1'),
		('Labour Day', '2026-05-01', TRUE, NULL)
	`)
	require.NoError(t, err)
}

func TestBulkRepository_SelectIDs(t *testing.T) {
	setup := NewTestDatabase(t)
	seedHolidays(t, setup)
	repo := postgresql.NewBulkRepository(setup.DB)
	ctx := context.Background()

	ids, err := repo.SelectIDs(ctx, holidayEntity, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	ids, err = repo.SelectIDs(ctx, holidayEntity, map[string]string{"recurring": "true"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids)

	_, err = repo.SelectIDs(ctx, holidayEntity, map[string]string{"name; DROP TABLE x": "1"})
	assert.ErrorIs(t, err, bulk.ErrUnknownFilterColumn)
}

func TestBulkRepository_DeleteAndExport(t *testing.T) {
	setup := NewTestDatabase(t)
	seedHolidays(t, setup)
	repo := postgresql.NewBulkRepository(setup.DB)
	ctx := context.Background()

	rows, err := repo.ExportRows(ctx, holidayEntity, []string{"3", "1"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "New Year", "c1"}, {"3", "Labour Day", ""}}, rows)

	affected, err := repo.Delete(ctx, holidayEntity, []string{"1", "3", "99"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	ids, err := repo.SelectIDs(ctx, holidayEntity, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids)
}

func TestBulkRepository_SetActive(t *testing.T) {
	setup := NewTestDatabase(t)
	seedHolidays(t, setup)
	repo := postgresql.NewBulkRepository(setup.DB)
	ctx := context.Background()

	affected, err := repo.SetActive(ctx, holidayEntity, []string{"1", "2"}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	affected, err = repo.SetActive(ctx, holidayEntity, []string{"1", "2"}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestBulkRepository_UpdateStatusOnlyFromPending(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewBulkRepository(setup.DB)
	ctx := context.Background()

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO leave_requests (employee_id, leave_type, status) VALUES
		('e1', 'annual', 'requested'),
		('e2', 'sick', 'approved'),
		('e3', 'annual', 'requested')
	`)
	require.NoError(t, err)

	affected, err := repo.UpdateStatus(ctx, requestEntity, []string{"1", "2", "3"}, "requested", "approved")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	seedHolidays(t, setup)
	repo := postgresql.NewBulkRepository(setup.DB)
	ctx := context.Background()

	err := postgresql.WithTransaction(ctx, setup.DB, func(ctx context.Context) error {
		if _, err := repo.Delete(ctx, holidayEntity, []string{"1", "2", "3"}); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	ids, err := repo.SelectIDs(ctx, holidayEntity, nil)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}

func TestTransactor_CancelledDeleteLeavesRows(t *testing.T) {
	setup := NewTestDatabase(t)
	seedHolidays(t, setup)
	repo := postgresql.NewBulkRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	ctx, cancel := context.WithCancel(context.Background())
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.Delete(ctx, holidayEntity, []string{"1", "2"}); err != nil {
			return err
		}
		cancel()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)

	ids, err := repo.SelectIDs(context.Background(), holidayEntity, nil)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	err = tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, err := repo.Delete(ctx, holidayEntity, []string{"1", "2"})
		return err
	})
	require.NoError(t, err)
	ids, err = repo.SelectIDs(context.Background(), holidayEntity, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids)
}
