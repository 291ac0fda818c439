package selection

import (
	"context"
	"time"
)

// SelectionRepository persists selection scopes between partial reloads.
type SelectionRepository interface {
	Save(ctx context.Context, state State) error
	GetByScopeID(ctx context.Context, scopeID string) (State, error)
	Delete(ctx context.Context, scopeID string) error
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}

// IDSource answers "every identifier matching this filter" for a list view.
type IDSource interface {
	HasView(view string) bool
	MatchingIDs(ctx context.Context, view string, filter map[string]string) ([]string, error)
}
