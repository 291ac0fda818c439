package bulk

import "context"

// BulkRepository runs set-based statements against an entity's table.
type BulkRepository interface {
	SelectIDs(ctx context.Context, entity Entity, filter map[string]string) ([]string, error)
	Delete(ctx context.Context, entity Entity, ids []string) (int64, error)
	UpdateStatus(ctx context.Context, entity Entity, ids []string, from, to string) (int64, error)
	SetActive(ctx context.Context, entity Entity, ids []string, active bool) (int64, error)
	ExportRows(ctx context.Context, entity Entity, ids []string) ([][]string, error)
}

// Transactor runs fn as one unit of work. Repositories called with the ctx
// handed to fn join it; a non-nil error from fn undoes their writes.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
