package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const selectionSchema = `
	CREATE TABLE IF NOT EXISTS selection_scopes (
		scope_id   TEXT PRIMARY KEY,
		view       TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		selected   JSONB NOT NULL DEFAULT '[]'::jsonb,
		clicked    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_selection_scopes_updated_at ON selection_scopes (updated_at);
`

// EnsureSelectionSchema creates the selection_scopes table when missing.
func EnsureSelectionSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, selectionSchema); err != nil {
		return fmt.Errorf("ensure selection schema: %w", err)
	}
	return nil
}

type selectionRepositoryImpl struct {
	db *database.DB
}

func NewSelectionRepository(db *database.DB) selection.SelectionRepository {
	return &selectionRepositoryImpl{db: db}
}

// Save implements selection.SelectionRepository.
func (s *selectionRepositoryImpl) Save(ctx context.Context, state selection.State) error {
	q := GetQuerier(ctx, s.db)

	selected, err := json.Marshal(state.Selected)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO selection_scopes (scope_id, view, user_id, selected, clicked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (scope_id) DO UPDATE
		SET selected = EXCLUDED.selected,
			clicked = EXCLUDED.clicked,
			updated_at = EXCLUDED.updated_at
	`
	_, err = q.Exec(ctx, query,
		state.ScopeID, state.View, state.UserID, selected, string(state.Clicked),
		state.CreatedAt, state.UpdatedAt,
	)
	return err
}

// GetByScopeID implements selection.SelectionRepository.
func (s *selectionRepositoryImpl) GetByScopeID(ctx context.Context, scopeID string) (selection.State, error) {
	q := GetQuerier(ctx, s.db)
	query := `
		SELECT scope_id, view, user_id, selected, clicked, created_at, updated_at
		FROM selection_scopes
		WHERE scope_id = $1
	`

	var state selection.State
	var selected []byte
	var clicked string
	err := q.QueryRow(ctx, query, scopeID).Scan(
		&state.ScopeID, &state.View, &state.UserID, &selected, &clicked,
		&state.CreatedAt, &state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return selection.State{}, selection.ErrScopeNotFound
		}
		return selection.State{}, err
	}

	if err := json.Unmarshal(selected, &state.Selected); err != nil {
		return selection.State{}, fmt.Errorf("decode scope %s: %w", scopeID, err)
	}
	state.Clicked = selection.SelectAllFlag(clicked)
	return state, nil
}

// Delete implements selection.SelectionRepository.
func (s *selectionRepositoryImpl) Delete(ctx context.Context, scopeID string) error {
	q := GetQuerier(ctx, s.db)
	commandTag, err := q.Exec(ctx, `DELETE FROM selection_scopes WHERE scope_id = $1`, scopeID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return selection.ErrScopeNotFound
	}
	return nil
}

// DeleteIdleSince implements selection.SelectionRepository.
func (s *selectionRepositoryImpl) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, s.db)
	commandTag, err := q.Exec(ctx, `DELETE FROM selection_scopes WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}
