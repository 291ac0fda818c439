package bulk

import (
	"context"
	"time"

	bulkDomain "github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
)

// Store holds the selection of one list view on the client. It is not safe
// for concurrent use; a list view drives it from one event loop.
type Store struct {
	entity bulkDomain.Entity
	state  selection.State
}

func NewStore(module, entity string) *Store {
	e := bulkDomain.Entity{Module: module, Name: entity}
	return &Store{
		entity: e,
		state:  selection.NewState("", e.View(), "", time.Now()),
	}
}

// State is the live selection handed to Dispatcher.Dispatch.
func (s *Store) State() *selection.State {
	return &s.state
}

func (s *Store) IDs() []string {
	return s.state.Selected.IDs()
}

func (s *Store) Count() int {
	return s.state.Count()
}

func (s *Store) Toggle(id string, checked bool) int {
	s.state.Toggle(id, checked)
	return s.state.Count()
}

// Restore replaces the selection with a serialized ids array. Malformed
// input leaves the selection empty and returns the parse error.
func (s *Store) Restore(raw string) error {
	ids, err := selection.ParseIDs(raw)
	s.state.Selected.Clear()
	if err != nil {
		return err
	}
	s.state.Selected.Add(ids...)
	return nil
}

// SelectAll unions every id matching filter. A failed lookup leaves the
// selection unchanged.
func (s *Store) SelectAll(ctx context.Context, transport Transport, filter map[string]string) (int, error) {
	ids, err := transport.SelectFilter(ctx, s.entity.SelectPath(), filter)
	if err != nil {
		return s.state.Count(), err
	}
	s.state.Union(ids)
	return s.state.Count(), nil
}

// UnselectAll removes every id of the view.
func (s *Store) UnselectAll(ctx context.Context, transport Transport) (int, error) {
	ids, err := transport.SelectFilter(ctx, s.entity.SelectPath(), nil)
	if err != nil {
		return s.state.Count(), err
	}
	s.state.Subtract(ids)
	return s.state.Count(), nil
}
