package selection

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/metrics"
)

const lockStripes = 64

type SelectionServiceImpl struct {
	selection.SelectionRepository
	ids     selection.IDSource
	metrics *metrics.Recorder
	ttl     time.Duration
	now     func() time.Time
	locks   [lockStripes]sync.Mutex
}

func NewSelectionService(
	repo selection.SelectionRepository,
	ids selection.IDSource,
	recorder *metrics.Recorder,
	ttl time.Duration,
) *SelectionServiceImpl {
	return &SelectionServiceImpl{
		SelectionRepository: repo,
		ids:                 ids,
		metrics:             recorder,
		ttl:                 ttl,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// lock serializes load-modify-save on one scope.
func (s *SelectionServiceImpl) lock(scopeID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(scopeID))
	m := &s.locks[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}

// load fetches a scope owned by userID. Expired scopes are dropped and
// reported as missing, like a selection lost on a full page reload.
func (s *SelectionServiceImpl) load(ctx context.Context, scopeID, userID string) (selection.State, error) {
	state, err := s.SelectionRepository.GetByScopeID(ctx, scopeID)
	if err != nil {
		return selection.State{}, err
	}
	if state.UserID != userID {
		return selection.State{}, selection.ErrScopeForbidden
	}
	if s.ttl > 0 && s.now().Sub(state.UpdatedAt) > s.ttl {
		if err := s.SelectionRepository.Delete(ctx, scopeID); err != nil && !errors.Is(err, selection.ErrScopeNotFound) {
			slog.Error("failed to drop expired selection scope", "scope_id", scopeID, "error", err)
		}
		return selection.State{}, selection.ErrScopeNotFound
	}
	return state, nil
}

func (s *SelectionServiceImpl) save(ctx context.Context, state *selection.State) error {
	state.UpdatedAt = s.now()
	if err := s.SelectionRepository.Save(ctx, *state); err != nil {
		return fmt.Errorf("failed to save selection scope: %w", err)
	}
	return nil
}

func viewResponse(state selection.State, ticked, unticked []string) selection.ViewResponse {
	if ticked == nil {
		ticked = []string{}
	}
	return selection.ViewResponse{
		ScopeID:       state.ScopeID,
		View:          state.View,
		IDs:           state.Selected.IDs(),
		Count:         state.Count(),
		Clicked:       state.Clicked,
		ShowActions:   state.Count() > 0,
		Ticked:        ticked,
		Unticked:      unticked,
		HeaderChecked: state.HeaderChecked(),
	}
}

// dedupe keeps the first occurrence of each non-blank id, preserving order.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Open implements selection.SelectionService.
func (s *SelectionServiceImpl) Open(ctx context.Context, req selection.OpenRequest) (selection.ViewResponse, error) {
	if err := req.Validate(); err != nil {
		return selection.ViewResponse{}, err
	}
	if !s.ids.HasView(req.View) {
		return selection.ViewResponse{}, fmt.Errorf("%w: %s", selection.ErrUnknownView, req.View)
	}

	scopeID, err := uuid.NewV7()
	if err != nil {
		return selection.ViewResponse{}, fmt.Errorf("failed to generate scope id: %w", err)
	}

	now := s.now()
	state := selection.NewState(scopeID.String(), req.View, req.UserID, now)
	if err := s.SelectionRepository.Save(ctx, state); err != nil {
		return selection.ViewResponse{}, fmt.Errorf("failed to save selection scope: %w", err)
	}

	s.metrics.SelectionOp("open")
	return viewResponse(state, nil, nil), nil
}

// ToggleRow implements selection.SelectionService.
func (s *SelectionServiceImpl) ToggleRow(ctx context.Context, req selection.ToggleRowRequest) (selection.ViewResponse, error) {
	if err := req.Validate(); err != nil {
		return selection.ViewResponse{}, err
	}
	defer s.lock(req.ScopeID)()

	state, err := s.load(ctx, req.ScopeID, req.UserID)
	if err != nil {
		return selection.ViewResponse{}, err
	}

	state.Toggle(req.ID, req.Checked)
	if err := s.save(ctx, &state); err != nil {
		return selection.ViewResponse{}, err
	}

	s.metrics.SelectionOp("toggle")
	var ticked, unticked []string
	if req.Checked {
		ticked = []string{req.ID}
	} else {
		unticked = []string{req.ID}
	}
	return viewResponse(state, ticked, unticked), nil
}

// SelectAllMatchingFilter implements selection.SelectionService.
func (s *SelectionServiceImpl) SelectAllMatchingFilter(ctx context.Context, req selection.SelectAllRequest) (selection.ViewResponse, error) {
	if err := req.Validate(); err != nil {
		return selection.ViewResponse{}, err
	}
	defer s.lock(req.ScopeID)()

	state, err := s.load(ctx, req.ScopeID, req.UserID)
	if err != nil {
		return selection.ViewResponse{}, err
	}

	ids, err := s.ids.MatchingIDs(ctx, state.View, req.Filter)
	if err != nil {
		slog.Error("select-all id lookup failed", "scope_id", state.ScopeID, "view", state.View, "error", err)
		return selection.ViewResponse{}, err
	}

	state.Union(ids)
	if err := s.save(ctx, &state); err != nil {
		return selection.ViewResponse{}, err
	}

	s.metrics.SelectionOp("select_all")
	return viewResponse(state, state.Ticked(req.VisibleIDs), nil), nil
}

// UnselectAll implements selection.SelectionService.
func (s *SelectionServiceImpl) UnselectAll(ctx context.Context, req selection.UnselectAllRequest) (selection.ViewResponse, error) {
	if err := req.Validate(); err != nil {
		return selection.ViewResponse{}, err
	}
	defer s.lock(req.ScopeID)()

	state, err := s.load(ctx, req.ScopeID, req.UserID)
	if err != nil {
		return selection.ViewResponse{}, err
	}

	ids, err := s.ids.MatchingIDs(ctx, state.View, nil)
	if err != nil {
		slog.Error("unselect-all id lookup failed", "scope_id", state.ScopeID, "view", state.View, "error", err)
		return selection.ViewResponse{}, err
	}

	unticked := dedupe(req.VisibleIDs)
	state.Subtract(append(ids, unticked...))
	if err := s.save(ctx, &state); err != nil {
		return selection.ViewResponse{}, err
	}

	s.metrics.SelectionOp("unselect_all")
	return viewResponse(state, nil, unticked), nil
}

// RestoreOnReload implements selection.SelectionService.
func (s *SelectionServiceImpl) RestoreOnReload(ctx context.Context, req selection.RestoreRequest) (selection.ViewResponse, error) {
	if err := req.Validate(); err != nil {
		return selection.ViewResponse{}, err
	}
	defer s.lock(req.ScopeID)()

	state, err := s.load(ctx, req.ScopeID, req.UserID)
	if err != nil {
		return selection.ViewResponse{}, err
	}

	// A reload counts as activity for the idle TTL.
	if err := s.save(ctx, &state); err != nil {
		return selection.ViewResponse{}, err
	}

	s.metrics.SelectionOp("restore")
	return viewResponse(state, state.Ticked(req.VisibleIDs), nil), nil
}

// Close implements selection.SelectionService.
func (s *SelectionServiceImpl) Close(ctx context.Context, scopeID, userID string) error {
	defer s.lock(scopeID)()

	if _, err := s.load(ctx, scopeID, userID); err != nil {
		return err
	}
	if err := s.SelectionRepository.Delete(ctx, scopeID); err != nil {
		return err
	}
	s.metrics.SelectionOp("close")
	return nil
}

// PurgeIdle implements selection.SelectionService.
func (s *SelectionServiceImpl) PurgeIdle(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	return s.SelectionRepository.DeleteIdleSince(ctx, s.now().Add(-s.ttl))
}

var _ selection.SelectionService = (*SelectionServiceImpl)(nil)
