// Package sqlite provides SQLite-backed repositories for single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
)

const selectionSchema = `
	CREATE TABLE IF NOT EXISTS selection_scopes (
		scope_id   TEXT PRIMARY KEY,
		view       TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		selected   TEXT NOT NULL DEFAULT '[]',
		clicked    TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_selection_scopes_updated_at ON selection_scopes (updated_at);
`

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

type SelectionRepository struct {
	sqlDB *sql.DB
}

// NewSelectionRepository creates the selection_scopes table when missing.
func NewSelectionRepository(ctx context.Context, db *sql.DB) (*SelectionRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if _, err := db.ExecContext(ctx, selectionSchema); err != nil {
		return nil, fmt.Errorf("ensure selection schema: %w", err)
	}
	return &SelectionRepository{sqlDB: db}, nil
}

func (r *SelectionRepository) Save(ctx context.Context, state selection.State) error {
	selected, err := json.Marshal(state.Selected)
	if err != nil {
		return err
	}
	_, err = r.sqlDB.ExecContext(ctx, `
		INSERT INTO selection_scopes (scope_id, view, user_id, selected, clicked, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (scope_id) DO UPDATE SET
			selected = excluded.selected,
			clicked = excluded.clicked,
			updated_at = excluded.updated_at`,
		state.ScopeID, state.View, state.UserID, string(selected), string(state.Clicked),
		toMillis(state.CreatedAt), toMillis(state.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save scope %s: %w", state.ScopeID, err)
	}
	return nil
}

func (r *SelectionRepository) GetByScopeID(ctx context.Context, scopeID string) (selection.State, error) {
	var (
		state                selection.State
		selected, clicked    string
		createdAt, updatedAt int64
	)
	err := r.sqlDB.QueryRowContext(ctx, `
		SELECT scope_id, view, user_id, selected, clicked, created_at, updated_at
		FROM selection_scopes WHERE scope_id = ?`, scopeID,
	).Scan(&state.ScopeID, &state.View, &state.UserID, &selected, &clicked, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return selection.State{}, selection.ErrScopeNotFound
		}
		return selection.State{}, fmt.Errorf("load scope %s: %w", scopeID, err)
	}

	if err := json.Unmarshal([]byte(selected), &state.Selected); err != nil {
		return selection.State{}, fmt.Errorf("decode scope %s: %w", scopeID, err)
	}
	state.Clicked = selection.SelectAllFlag(clicked)
	state.CreatedAt = fromMillis(createdAt)
	state.UpdatedAt = fromMillis(updatedAt)
	return state, nil
}

func (r *SelectionRepository) Delete(ctx context.Context, scopeID string) error {
	res, err := r.sqlDB.ExecContext(ctx, `DELETE FROM selection_scopes WHERE scope_id = ?`, scopeID)
	if err != nil {
		return fmt.Errorf("delete scope %s: %w", scopeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return selection.ErrScopeNotFound
	}
	return nil
}

func (r *SelectionRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.sqlDB.ExecContext(ctx, `DELETE FROM selection_scopes WHERE updated_at < ?`, toMillis(cutoff))
	if err != nil {
		return 0, fmt.Errorf("purge idle scopes: %w", err)
	}
	return res.RowsAffected()
}

var _ selection.SelectionRepository = (*SelectionRepository)(nil)
