package http

import (
	"net/http"

	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/middleware"
	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/response"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
)

type LanguageHandler interface {
	GetLanguageCode(w http.ResponseWriter, r *http.Request)
}

type languageHandlerImpl struct{}

func NewLanguageHandler() LanguageHandler {
	return &languageHandlerImpl{}
}

type LanguageCodeResponse struct {
	LanguageCode i18n.Code `json:"language_code"`
}

// GetLanguageCode answers the dialog-language lookup of the list views.
func (h *languageHandlerImpl) GetLanguageCode(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, LanguageCodeResponse{
		LanguageCode: i18n.Resolve(r, principal.Language),
	})
}
