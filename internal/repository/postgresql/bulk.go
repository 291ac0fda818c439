package postgresql

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const idColumn = "id"

type bulkRepositoryImpl struct {
	db *database.DB
}

func NewBulkRepository(db *database.DB) bulk.BulkRepository {
	return &bulkRepositoryImpl{db: db}
}

func ident(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

// SelectIDs implements bulk.BulkRepository.
func (b *bulkRepositoryImpl) SelectIDs(ctx context.Context, entity bulk.Entity, filter map[string]string) ([]string, error) {
	q := GetQuerier(ctx, b.db)

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
		args = append(args, filter[column])
		where = append(where, fmt.Sprintf("%s::text = $%d", ident(column), len(args)))
	}

	query := fmt.Sprintf("SELECT %s::text FROM %s", ident(idColumn), ident(entity.Table))
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s", ident(idColumn))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select ids from %s: %w", entity.Table, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("select ids from %s: %w", entity.Table, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Delete implements bulk.BulkRepository.
func (b *bulkRepositoryImpl) Delete(ctx context.Context, entity bulk.Entity, ids []string) (int64, error) {
	q := GetQuerier(ctx, b.db)
	query := fmt.Sprintf("DELETE FROM %s WHERE %s::text = ANY($1)", ident(entity.Table), ident(idColumn))

	commandTag, err := q.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", entity.Table, err)
	}
	return commandTag.RowsAffected(), nil
}

// UpdateStatus implements bulk.BulkRepository. Only rows currently in from move to to.
func (b *bulkRepositoryImpl) UpdateStatus(ctx context.Context, entity bulk.Entity, ids []string, from, to string) (int64, error) {
	q := GetQuerier(ctx, b.db)
	query := fmt.Sprintf(
		"UPDATE %[1]s SET %[2]s = $1 WHERE %[3]s::text = ANY($2) AND %[2]s = $3",
		ident(entity.Table), ident(entity.StatusColumn), ident(idColumn),
	)

	commandTag, err := q.Exec(ctx, query, to, ids, from)
	if err != nil {
		return 0, fmt.Errorf("update status of %s: %w", entity.Table, err)
	}
	return commandTag.RowsAffected(), nil
}

// SetActive implements bulk.BulkRepository.
func (b *bulkRepositoryImpl) SetActive(ctx context.Context, entity bulk.Entity, ids []string, active bool) (int64, error) {
	q := GetQuerier(ctx, b.db)
	query := fmt.Sprintf(
		"UPDATE %[1]s SET %[2]s = $1 WHERE %[3]s::text = ANY($2) AND %[2]s IS DISTINCT FROM $1",
		ident(entity.Table), ident(entity.ActiveColumn), ident(idColumn),
	)

	commandTag, err := q.Exec(ctx, query, active, ids)
	if err != nil {
		return 0, fmt.Errorf("set active on %s: %w", entity.Table, err)
	}
	return commandTag.RowsAffected(), nil
}

// ExportRows implements bulk.BulkRepository. Every cell is rendered as text; NULL becomes "".
func (b *bulkRepositoryImpl) ExportRows(ctx context.Context, entity bulk.Entity, ids []string) ([][]string, error) {
	q := GetQuerier(ctx, b.db)

	selects := make([]string, len(entity.ExportColumns))
	for i, c := range entity.ExportColumns {
		selects[i] = fmt.Sprintf("COALESCE(%s::text, '')", ident(c.Name))
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s::text = ANY($1) ORDER BY %s",
		strings.Join(selects, ", "), ident(entity.Table), ident(idColumn), ident(idColumn),
	)

	rows, err := q.Query(ctx, query, ids)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("export %s: %w", entity.Table, err)
	}
	return out, nil
}
