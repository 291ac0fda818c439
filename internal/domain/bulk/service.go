package bulk

import "context"

type BulkService interface {
	Delete(ctx context.Context, req BulkRequest) (BulkResult, error)
	Approve(ctx context.Context, req BulkRequest) (BulkResult, error)
	Reject(ctx context.Context, req BulkRequest) (BulkResult, error)
	// Archive sets the entity's active flag to isActive; false archives, true restores.
	Archive(ctx context.Context, req BulkRequest, isActive bool) (BulkResult, error)
	Export(ctx context.Context, req ExportRequest) (ExportFile, error)
	SelectIDs(ctx context.Context, req SelectRequest) (SelectIDsResponse, error)
}
