// Package memory keeps selection scopes in process memory. Scopes vanish on
// restart, which the client treats like a full page reload.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
)

type SelectionRepository struct {
	mu     sync.RWMutex
	scopes map[string]selection.State
}

func NewSelectionRepository() *SelectionRepository {
	return &SelectionRepository{scopes: make(map[string]selection.State)}
}

// Save stores a copy of state so later mutations by the caller do not leak in.
func (r *SelectionRepository) Save(ctx context.Context, state selection.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopes[state.ScopeID] = state.Clone()
	return nil
}

func (r *SelectionRepository) GetByScopeID(ctx context.Context, scopeID string) (selection.State, error) {
	if err := ctx.Err(); err != nil {
		return selection.State{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.scopes[scopeID]
	if !ok {
		return selection.State{}, selection.ErrScopeNotFound
	}
	return state.Clone(), nil
}

func (r *SelectionRepository) Delete(ctx context.Context, scopeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scopes[scopeID]; !ok {
		return selection.ErrScopeNotFound
	}
	delete(r.scopes, scopeID)
	return nil
}

// DeleteIdleSince drops scopes last updated before cutoff.
func (r *SelectionRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var purged int64
	for id, state := range r.scopes {
		if state.UpdatedAt.Before(cutoff) {
			delete(r.scopes, id)
			purged++
		}
	}
	return purged, nil
}

func (r *SelectionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scopes)
}

var _ selection.SelectionRepository = (*SelectionRepository)(nil)
