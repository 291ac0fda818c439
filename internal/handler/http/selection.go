package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/middleware"
	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/response"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/validator"
)

// SelectionHandler exposes the server-held selection scopes of the list views.
type SelectionHandler interface {
	Open(w http.ResponseWriter, r *http.Request)
	Restore(w http.ResponseWriter, r *http.Request)
	Toggle(w http.ResponseWriter, r *http.Request)
	SelectAll(w http.ResponseWriter, r *http.Request)
	UnselectAll(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
}

type selectionHandlerImpl struct {
	selectionService selection.SelectionService
}

func NewSelectionHandler(selectionService selection.SelectionService) SelectionHandler {
	return &selectionHandlerImpl{selectionService: selectionService}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// scopeParam reads the scope id from the path. Scope ids are UUIDv7, anything
// else cannot name a scope and is answered with 404.
func scopeParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	scopeID := chi.URLParam(r, "scopeID")
	if !validator.IsValidUUID(scopeID) {
		response.HandleError(w, selection.ErrScopeNotFound)
		return "", false
	}
	return scopeID, true
}

// Open implements SelectionHandler.
func (h *selectionHandlerImpl) Open(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req selection.OpenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.UserID = principal.UserID

	view, err := h.selectionService.Open(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Selection opened", view)
}

// Restore implements SelectionHandler. visible carries the ids rendered by the
// reloaded fragment as a JSON array.
func (h *selectionHandlerImpl) Restore(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	scopeID, ok := scopeParam(w, r)
	if !ok {
		return
	}

	visible, err := selection.ParseIDs(r.URL.Query().Get("visible"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.selectionService.RestoreOnReload(r.Context(), selection.RestoreRequest{
		ScopeID:    scopeID,
		UserID:     principal.UserID,
		VisibleIDs: visible,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// Toggle implements SelectionHandler.
func (h *selectionHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req selection.ToggleRowRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var ok bool
	if req.ScopeID, ok = scopeParam(w, r); !ok {
		return
	}
	req.UserID = principal.UserID

	view, err := h.selectionService.ToggleRow(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// SelectAll implements SelectionHandler.
func (h *selectionHandlerImpl) SelectAll(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req selection.SelectAllRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var ok bool
	if req.ScopeID, ok = scopeParam(w, r); !ok {
		return
	}
	req.UserID = principal.UserID

	view, err := h.selectionService.SelectAllMatchingFilter(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// UnselectAll implements SelectionHandler.
func (h *selectionHandlerImpl) UnselectAll(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req selection.UnselectAllRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var ok bool
	if req.ScopeID, ok = scopeParam(w, r); !ok {
		return
	}
	req.UserID = principal.UserID

	view, err := h.selectionService.UnselectAll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// Close implements SelectionHandler.
func (h *selectionHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	scopeID, ok := scopeParam(w, r)
	if !ok {
		return
	}

	if err := h.selectionService.Close(r.Context(), scopeID, principal.UserID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Selection closed", nil)
}
