package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
)

const idColumn = "id"

// BulkRepository runs bulk statements against entity tables stored in SQLite.
type BulkRepository struct {
	sqlDB *sql.DB
}

func NewBulkRepository(db *sql.DB) *BulkRepository {
	return &BulkRepository{sqlDB: db}
}

// quote wraps an identifier already validated by bulk.NewRegistry.
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// inClause binds ids as one JSON array, so a selection of any size stays
// under SQLite's bound-variable limit.
func inClause(ids []string) (string, []interface{}, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", nil, err
	}
	return "(SELECT value FROM json_each(?))", []interface{}{string(data)}, nil
}

func (b *BulkRepository) SelectIDs(ctx context.Context, entity bulk.Entity, filter map[string]string) ([]string, error) {
	columns := make([]string, 0, len(filter))
	for column := range filter {
		if !entity.AllowsFilter(column) {
			return nil, fmt.Errorf("%w: %s", bulk.ErrUnknownFilterColumn, column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var where []string
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		where = append(where, fmt.Sprintf("CAST(%s AS TEXT) = ?", quote(column)))
		args = append(args, filter[column])
	}

	query := fmt.Sprintf("SELECT CAST(%s AS TEXT) FROM %s", quote(idColumn), quote(entity.Table))
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s", quote(idColumn))

	rows, err := b.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select ids from %s: %w", entity.Table, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("select ids from %s: %w", entity.Table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (b *BulkRepository) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := b.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (b *BulkRepository) Delete(ctx context.Context, entity bulk.Entity, ids []string) (int64, error) {
	in, args, err := inClause(ids)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE CAST(%s AS TEXT) IN %s", quote(entity.Table), quote(idColumn), in)
	n, err := b.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", entity.Table, err)
	}
	return n, nil
}

func (b *BulkRepository) UpdateStatus(ctx context.Context, entity bulk.Entity, ids []string, from, to string) (int64, error) {
	in, idArgs, err := inClause(ids)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(
		"UPDATE %[1]s SET %[2]s = ? WHERE %[2]s = ? AND CAST(%[3]s AS TEXT) IN %[4]s",
		quote(entity.Table), quote(entity.StatusColumn), quote(idColumn), in,
	)
	args := append([]interface{}{to, from}, idArgs...)
	n, err := b.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update status of %s: %w", entity.Table, err)
	}
	return n, nil
}

func (b *BulkRepository) SetActive(ctx context.Context, entity bulk.Entity, ids []string, active bool) (int64, error) {
	in, idArgs, err := inClause(ids)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(
		"UPDATE %[1]s SET %[2]s = ? WHERE %[2]s IS NOT ? AND CAST(%[3]s AS TEXT) IN %[4]s",
		quote(entity.Table), quote(entity.ActiveColumn), quote(idColumn), in,
	)
	args := append([]interface{}{active, active}, idArgs...)
	n, err := b.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("set active on %s: %w", entity.Table, err)
	}
	return n, nil
}

func (b *BulkRepository) ExportRows(ctx context.Context, entity bulk.Entity, ids []string) ([][]string, error) {
	selects := make([]string, len(entity.ExportColumns))
	for i, c := range entity.ExportColumns {
		selects[i] = fmt.Sprintf("COALESCE(CAST(%s AS TEXT), '')", quote(c.Name))
	}
	in, args, err := inClause(ids)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE CAST(%s AS TEXT) IN %s ORDER BY %s",
		strings.Join(selects, ", "), quote(entity.Table), quote(idColumn), in, quote(idColumn),
	)

	rows, err := b.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", entity.Table, err)
	}
	defer rows.Close()

	out := [][]string{}
	for rows.Next() {
		record := make([]string, len(selects))
		dest := make([]interface{}, len(selects))
		for i := range record {
			dest[i] = &record[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("export %s: %w", entity.Table, err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

var _ bulk.BulkRepository = (*BulkRepository)(nil)
