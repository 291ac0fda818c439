package selection

import "context"

type SelectionService interface {
	Open(ctx context.Context, req OpenRequest) (ViewResponse, error)
	ToggleRow(ctx context.Context, req ToggleRowRequest) (ViewResponse, error)
	SelectAllMatchingFilter(ctx context.Context, req SelectAllRequest) (ViewResponse, error)
	UnselectAll(ctx context.Context, req UnselectAllRequest) (ViewResponse, error)
	RestoreOnReload(ctx context.Context, req RestoreRequest) (ViewResponse, error)
	Close(ctx context.Context, scopeID, userID string) error
	PurgeIdle(ctx context.Context) (int64, error)
}
