package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/user"
	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/middleware"
	"github.com/horilla-hris/hris-bulk-go/internal/handler/http/response"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/csrf"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/jwt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string
	LogLevel       slog.Level
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	languageHandler LanguageHandler,
	selectionHandler SelectionHandler,
	bulkHandler BulkHandler,
	eventHandler EventHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", csrf.HeaderName},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json", "application/x-www-form-urlencoded", "multipart/form-data"))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// EventSource authenticates with a short-lived token in the query
	r.Get("/api/v1/events", eventHandler.Stream)

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/api/v1", func(r chi.Router) {
			r.Post("/events/token", eventHandler.GetSSEToken)

			r.Route("/selections", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionSelectionUse))
				r.Post("/", selectionHandler.Open)
				r.Route("/{scopeID}", func(r chi.Router) {
					r.Get("/", selectionHandler.Restore)
					r.Delete("/", selectionHandler.Close)
					r.Post("/toggle", selectionHandler.Toggle)
					r.Post("/select-all", selectionHandler.SelectAll)
					r.Post("/unselect-all", selectionHandler.UnselectAll)
				})
			})
		})

		// Endpoints the server-rendered list views call with form posts
		r.Group(func(r chi.Router) {
			r.Use(csrf.Middleware(func(w http.ResponseWriter, r *http.Request, err error) {
				response.HandleError(w, err)
			}))

			r.Get("/employee/get-language-code/", languageHandler.GetLanguageCode)
			r.Post("/{module}/{operation}", bulkHandler.Mutate)
			r.Get("/{module}/{operation}", bulkHandler.Query)
		})
	})
	return r
}
