package bulk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/export"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/metrics"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/sse"
)

// CompletedEvent is the payload of the bulk.completed stream event.
type CompletedEvent struct {
	bulk.BulkResult
	Reload bool `json:"reload"`
}

// FailedEvent is the payload of the bulk.failed stream event.
type FailedEvent struct {
	Action    bulk.ActionKey `json:"action"`
	View      string         `json:"view"`
	Requested int            `json:"requested"`
}

type BulkServiceImpl struct {
	repo     bulk.BulkRepository
	tx       bulk.Transactor
	registry *bulk.Registry
	hub      *sse.Hub
	metrics  *metrics.Recorder
	now      func() time.Time
}

func NewBulkService(
	repo bulk.BulkRepository,
	registry *bulk.Registry,
	hub *sse.Hub,
	recorder *metrics.Recorder,
) *BulkServiceImpl {
	return &BulkServiceImpl{
		repo:     repo,
		registry: registry,
		hub:      hub,
		metrics:  recorder,
		now:      time.Now,
	}
}

// WithTransactor makes every mutation run inside tx.
func (s *BulkServiceImpl) WithTransactor(tx bulk.Transactor) *BulkServiceImpl {
	s.tx = tx
	return s
}

// resolve validates req and returns the entity together with the deduplicated ids.
func (s *BulkServiceImpl) resolve(req bulk.BulkRequest, action bulk.ActionKey) (bulk.Entity, []string, error) {
	if err := req.Validate(); err != nil {
		if errors.Is(err, bulk.ErrEmptySelection) {
			s.metrics.BulkAction(req.Module, req.Entity, string(action), metrics.OutcomeEmpty)
		}
		return bulk.Entity{}, nil, err
	}
	entity, err := s.registry.Lookup(req.Module, req.Entity)
	if err != nil {
		return bulk.Entity{}, nil, err
	}
	if !entity.Supports(action) {
		return bulk.Entity{}, nil, fmt.Errorf("%w: %s on %s", bulk.ErrActionNotSupported, action, entity.View())
	}
	return entity, selection.NewSet(req.IDs...).IDs(), nil
}

// mutate runs one set-based statement and reports its outcome. With a
// transactor set, a request cancelled before commit leaves the rows untouched.
func (s *BulkServiceImpl) mutate(
	ctx context.Context,
	req bulk.BulkRequest,
	action bulk.ActionKey,
	run func(ctx context.Context, entity bulk.Entity, ids []string) (int64, error),
) (bulk.BulkResult, error) {
	entity, ids, err := s.resolve(req, action)
	if err != nil {
		return bulk.BulkResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return bulk.BulkResult{}, err
	}

	var affected int64
	if s.tx != nil {
		err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			n, err := run(ctx, entity, ids)
			if err != nil {
				return err
			}
			affected = n
			return ctx.Err()
		})
	} else {
		affected, err = run(ctx, entity, ids)
	}
	if err != nil {
		s.metrics.BulkAction(entity.Module, entity.Name, string(action), metrics.OutcomeFailure)
		slog.Error("bulk action failed", "view", entity.View(), "action", action, "requested", len(ids), "error", err)
		s.publish(req.UserID, sse.EventBulkFailed, FailedEvent{Action: action, View: entity.View(), Requested: len(ids)})
		return bulk.BulkResult{}, fmt.Errorf("failed to %s %s: %w", action, entity.View(), err)
	}

	result := bulk.BulkResult{
		Action:    action,
		View:      entity.View(),
		Requested: len(ids),
		Affected:  affected,
	}

	s.metrics.BulkAction(entity.Module, entity.Name, string(action), metrics.OutcomeSuccess)
	s.metrics.RowsAffected(entity.Module, entity.Name, string(action), affected)
	s.publish(req.UserID, sse.EventBulkCompleted, CompletedEvent{BulkResult: result, Reload: true})
	return result, nil
}

func (s *BulkServiceImpl) publish(userID, event string, data interface{}) {
	if s.hub == nil || userID == "" {
		return
	}
	s.hub.Publish(sse.Event{UserID: userID, Event: event, Data: data})
}

// Delete implements bulk.BulkService.
func (s *BulkServiceImpl) Delete(ctx context.Context, req bulk.BulkRequest) (bulk.BulkResult, error) {
	return s.mutate(ctx, req, bulk.ActionDelete, func(ctx context.Context, entity bulk.Entity, ids []string) (int64, error) {
		return s.repo.Delete(ctx, entity, ids)
	})
}

// Approve implements bulk.BulkService.
func (s *BulkServiceImpl) Approve(ctx context.Context, req bulk.BulkRequest) (bulk.BulkResult, error) {
	return s.mutate(ctx, req, bulk.ActionApprove, func(ctx context.Context, entity bulk.Entity, ids []string) (int64, error) {
		return s.repo.UpdateStatus(ctx, entity, ids, entity.PendingStatus, entity.ApprovedStatus)
	})
}

// Reject implements bulk.BulkService.
func (s *BulkServiceImpl) Reject(ctx context.Context, req bulk.BulkRequest) (bulk.BulkResult, error) {
	return s.mutate(ctx, req, bulk.ActionReject, func(ctx context.Context, entity bulk.Entity, ids []string) (int64, error) {
		return s.repo.UpdateStatus(ctx, entity, ids, entity.PendingStatus, entity.RejectedStatus)
	})
}

// Archive implements bulk.BulkService.
func (s *BulkServiceImpl) Archive(ctx context.Context, req bulk.BulkRequest, isActive bool) (bulk.BulkResult, error) {
	action := bulk.ActionArchive
	if isActive {
		action = bulk.ActionUnarchive
	}
	return s.mutate(ctx, req, action, func(ctx context.Context, entity bulk.Entity, ids []string) (int64, error) {
		return s.repo.SetActive(ctx, entity, ids, isActive)
	})
}

// Export implements bulk.BulkService.
func (s *BulkServiceImpl) Export(ctx context.Context, req bulk.ExportRequest) (bulk.ExportFile, error) {
	entity, ids, err := s.resolve(req, bulk.ActionExport)
	if err != nil {
		return bulk.ExportFile{}, err
	}

	rows, err := s.repo.ExportRows(ctx, entity, ids)
	if err != nil {
		s.metrics.BulkAction(entity.Module, entity.Name, string(bulk.ActionExport), metrics.OutcomeFailure)
		return bulk.ExportFile{}, fmt.Errorf("failed to export %s: %w", entity.View(), err)
	}

	sheet := entity.Label
	if sheet == "" {
		sheet = entity.Name
	}
	data, err := export.Workbook(sheet, entity.ExportHeaders(), rows)
	if err != nil {
		s.metrics.BulkAction(entity.Module, entity.Name, string(bulk.ActionExport), metrics.OutcomeFailure)
		return bulk.ExportFile{}, fmt.Errorf("failed to render %s export: %w", entity.View(), err)
	}

	s.metrics.BulkAction(entity.Module, entity.Name, string(bulk.ActionExport), metrics.OutcomeSuccess)
	s.metrics.Exported(len(data))
	return bulk.ExportFile{
		Filename:    export.Filename(entity.Name, s.now()),
		ContentType: export.ContentType,
		Data:        data,
	}, nil
}

// SelectIDs implements bulk.BulkService.
func (s *BulkServiceImpl) SelectIDs(ctx context.Context, req bulk.SelectRequest) (bulk.SelectIDsResponse, error) {
	if err := req.Validate(); err != nil {
		return bulk.SelectIDsResponse{}, err
	}
	entity, err := s.registry.Lookup(req.Module, req.Entity)
	if err != nil {
		return bulk.SelectIDsResponse{}, err
	}

	ids, err := s.selectIDs(ctx, entity, req.Filter)
	if err != nil {
		return bulk.SelectIDsResponse{}, err
	}
	return bulk.SelectIDsResponse{IDs: ids, TotalCount: len(ids)}, nil
}

func (s *BulkServiceImpl) selectIDs(ctx context.Context, entity bulk.Entity, filter map[string]string) ([]string, error) {
	for column := range filter {
		if !entity.AllowsFilter(column) {
			return nil, fmt.Errorf("%w: %s", bulk.ErrUnknownFilterColumn, column)
		}
	}
	ids, err := s.repo.SelectIDs(ctx, entity, filter)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// HasView implements selection.IDSource.
func (s *BulkServiceImpl) HasView(view string) bool {
	_, err := s.registry.ByView(view)
	return err == nil
}

// MatchingIDs implements selection.IDSource.
func (s *BulkServiceImpl) MatchingIDs(ctx context.Context, view string, filter map[string]string) ([]string, error) {
	entity, err := s.registry.ByView(view)
	if err != nil {
		return nil, err
	}
	return s.selectIDs(ctx, entity, filter)
}

var (
	_ bulk.BulkService   = (*BulkServiceImpl)(nil)
	_ selection.IDSource = (*BulkServiceImpl)(nil)
)
