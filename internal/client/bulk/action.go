// Package bulk is the client side of the list-view bulk actions: the
// selection store, the HTTP transport and the confirm-then-dispatch flow.
package bulk

import (
	"fmt"
	"net/url"

	bulkDomain "github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
)

// Action is one bulk action bound to an entity list view.
type Action struct {
	Key     bulkDomain.ActionKey
	Module  string
	Entity  string
	Confirm i18n.Table
	Success i18n.Table
}

func NewAction(module, entity string, key bulkDomain.ActionKey) (Action, error) {
	if module == "" || entity == "" {
		return Action{}, fmt.Errorf("module and entity are required")
	}
	confirm, ok := i18n.Confirmation(string(key))
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", bulkDomain.ErrActionNotSupported, key)
	}
	success, _ := i18n.Success(string(key))
	return Action{
		Key:     key,
		Module:  module,
		Entity:  entity,
		Confirm: confirm,
		Success: success,
	}, nil
}

func (a Action) Severity() bulkDomain.Severity {
	return a.Key.Severity()
}

func (a Action) View() string {
	return a.Module + "." + a.Entity
}

// Path is the endpoint the action posts (or, for export, gets) to.
func (a Action) Path() string {
	return bulkDomain.Entity{Module: a.Module, Name: a.Entity}.Path(a.Key)
}

// Query carries the is_active flag shared by archive and unarchive.
func (a Action) Query() url.Values {
	switch a.Key {
	case bulkDomain.ActionArchive:
		return url.Values{"is_active": {"False"}}
	case bulkDomain.ActionUnarchive:
		return url.Values{"is_active": {"True"}}
	}
	return nil
}
