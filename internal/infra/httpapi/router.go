// internal/infra/httpapi/router.go
package httpapi

import (
	"net/http"

	"mental_screening_service/internal/app"
	"mental_screening_service/internal/domain/notification"
	"mental_screening_service/internal/infra/token"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// Handler bundles the services the HTTP layer exposes.
type Handler struct {
	submissions *app.SubmissionService
	reports     *app.ReportService
	dispatcher  app.Dispatcher
	channels    []notification.Channel
	auth        app.Authenticator
	tokens      *token.Manager
	verifier    SignatureVerifier
	logger      *logrus.Logger
}

func NewHandler(
	submissions *app.SubmissionService,
	reports *app.ReportService,
	dispatcher app.Dispatcher,
	channels []notification.Channel,
	auth app.Authenticator,
	tokens *token.Manager,
	verifier SignatureVerifier,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		submissions: submissions,
		reports:     reports,
		dispatcher:  dispatcher,
		channels:    channels,
		auth:        auth,
		tokens:      tokens,
		verifier:    verifier,
		logger:      logger,
	}
}

// NewRouter wires all routes. History and dashboard require a capability
// token obtained via the login endpoint.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/screenings", h.SubmitScreening)
		r.Post("/auth/login", h.Login)
		r.Post("/line-webhook", h.LineWebhook)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireCapability(token.ScopeHistoryRead))
			r.Post("/alerts", h.SendAlert)
			r.Get("/screenings", h.ListScreenings)
			r.Get("/screenings/{id}", h.GetScreening)
			r.Get("/dashboard/summary", h.DashboardSummary)
		})
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
