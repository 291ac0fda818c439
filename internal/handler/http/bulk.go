package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/user"
	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/middleware"
	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/response"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/csrf"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/validator"
)

const (
	idsField      = "ids"
	isActiveParam = "is_active"
	filterParam   = "filter"
)

// BulkHandler serves the per-entity endpoints of the list views:
// POST /{module}/{entity}-bulk-{delete,approve,reject,archive} and
// GET /{module}/{entity}-{info-export,select-filter}.
type BulkHandler interface {
	Mutate(w http.ResponseWriter, r *http.Request)
	Query(w http.ResponseWriter, r *http.Request)
}

type bulkHandlerImpl struct {
	bulkService bulk.BulkService
}

func NewBulkHandler(bulkService bulk.BulkService) BulkHandler {
	return &bulkHandlerImpl{bulkService: bulkService}
}

func permissionFor(action bulk.ActionKey) user.Permission {
	switch action {
	case bulk.ActionApprove, bulk.ActionReject:
		return user.PermissionBulkApprove
	case bulk.ActionExport:
		return user.PermissionBulkExport
	default:
		return user.PermissionBulkManage
	}
}

// operation parses the {operation} segment, answering 404 when it is not a bulk endpoint.
func operation(w http.ResponseWriter, r *http.Request) (module, entity, suffix string, ok bool) {
	module = chi.URLParam(r, "module")
	entity, suffix, ok = bulk.SplitOperation(chi.URLParam(r, "operation"))
	if !ok {
		response.NotFound(w, "Endpoint not found")
	}
	return module, entity, suffix, ok
}

// writeBulkError answers err, localizing the empty-selection warning.
func writeBulkError(w http.ResponseWriter, r *http.Request, code i18n.Code, err error) {
	switch {
	case errors.Is(err, bulk.ErrEmptySelection):
		response.BadRequest(w, i18n.NoRows.Get(code), nil)
	case errors.Is(err, selection.ErrMalformedIDs):
		response.BadRequest(w, i18n.NoRows.Get(code), map[string]string{idsField: err.Error()})
	default:
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			slog.Error("bulk request failed", "path", r.URL.Path, "error", err)
		}
		response.HandleError(w, err)
	}
}

// Mutate implements BulkHandler.
func (h *bulkHandlerImpl) Mutate(w http.ResponseWriter, r *http.Request) {
	module, entity, suffix, ok := operation(w, r)
	if !ok {
		return
	}

	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	code := i18n.Resolve(r, principal.Language)

	var action bulk.ActionKey
	switch suffix {
	case bulk.SuffixDelete:
		action = bulk.ActionDelete
	case bulk.SuffixApprove:
		action = bulk.ActionApprove
	case bulk.SuffixReject:
		action = bulk.ActionReject
	case bulk.SuffixArchive:
		action = bulk.ActionArchive
	default:
		response.MethodNotAllowed(w, "Use GET for "+suffix)
		return
	}

	isActive := false
	if action == bulk.ActionArchive {
		if raw := r.URL.Query().Get(isActiveParam); raw != "" {
			v, ok := validator.ParseBool(raw)
			if !ok {
				response.BadRequest(w, "Invalid is_active", map[string]string{isActiveParam: "must be True or False"})
				return
			}
			isActive = v
		}
		if isActive {
			action = bulk.ActionUnarchive
		}
	}

	if !middleware.Authorize(w, principal, permissionFor(action)) {
		return
	}

	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form body", nil)
		return
	}
	ids, err := selection.ParseIDs(r.PostForm.Get(idsField))
	if err != nil {
		writeBulkError(w, r, code, err)
		return
	}

	req := bulk.BulkRequest{Module: module, Entity: entity, IDs: ids, UserID: principal.UserID}
	var result bulk.BulkResult
	switch action {
	case bulk.ActionDelete:
		result, err = h.bulkService.Delete(r.Context(), req)
	case bulk.ActionApprove:
		result, err = h.bulkService.Approve(r.Context(), req)
	case bulk.ActionReject:
		result, err = h.bulkService.Reject(r.Context(), req)
	default:
		result, err = h.bulkService.Archive(r.Context(), req, isActive)
	}
	if err != nil {
		writeBulkError(w, r, code, err)
		return
	}

	message := string(action)
	if table, ok := i18n.Success(string(action)); ok {
		message = table.Format(code, result.Affected)
	}
	response.SuccessWithMessage(w, message, result)
}

// Query implements BulkHandler.
func (h *bulkHandlerImpl) Query(w http.ResponseWriter, r *http.Request) {
	module, entity, suffix, ok := operation(w, r)
	if !ok {
		return
	}

	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	code := i18n.Resolve(r, principal.Language)

	switch suffix {
	case bulk.SuffixExport:
		h.export(w, r, principal, code, module, entity)
	case bulk.SuffixSelectFilter:
		h.selectFilter(w, r, principal, code, module, entity)
	default:
		response.MethodNotAllowed(w, "Use POST with "+csrf.FormField+" for "+suffix)
	}
}

func (h *bulkHandlerImpl) export(w http.ResponseWriter, r *http.Request, principal user.Principal, code i18n.Code, module, entity string) {
	if !middleware.Authorize(w, principal, user.PermissionBulkExport) {
		return
	}

	ids, err := selection.ParseIDs(r.URL.Query().Get(idsField))
	if err != nil {
		writeBulkError(w, r, code, err)
		return
	}

	file, err := h.bulkService.Export(r.Context(), bulk.ExportRequest{
		Module: module, Entity: entity, IDs: ids, UserID: principal.UserID,
	})
	if err != nil {
		writeBulkError(w, r, code, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Data)
}

func (h *bulkHandlerImpl) selectFilter(w http.ResponseWriter, r *http.Request, principal user.Principal, code i18n.Code, module, entity string) {
	if !middleware.Authorize(w, principal, user.PermissionSelectionUse) {
		return
	}

	filter, err := parseFilter(r.URL.Query().Get(filterParam))
	if err != nil {
		response.BadRequest(w, "Invalid filter", map[string]string{filterParam: err.Error()})
		return
	}

	resp, err := h.bulkService.SelectIDs(r.Context(), bulk.SelectRequest{Module: module, Entity: entity, Filter: filter})
	if err != nil {
		writeBulkError(w, r, code, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

// parseFilter decodes the serialized filter form. Values may be strings,
// numbers or booleans; blank values are dropped like unset form fields.
func parseFilter(raw string) (map[string]string, error) {
	filter := map[string]string{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return filter, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var values map[string]interface{}
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("filter must be a JSON object: %w", err)
	}

	for key, value := range values {
		var s string
		switch v := value.(type) {
		case nil:
			continue
		case string:
			s = strings.TrimSpace(v)
		case json.Number:
			s = v.String()
		case bool:
			s = fmt.Sprintf("%t", v)
		default:
			return nil, fmt.Errorf("filter %q must be a scalar", key)
		}
		if s != "" {
			filter[key] = s
		}
	}
	return filter, nil
}
