package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cradlewatch/cradlewatch/internal/auth"
)

// SetupRoutes configures all API routes. It returns the root router and
// the authenticated /api subrouter so tests can mount extra handlers.
func SetupRoutes(h *Handlers, tokens *auth.TokenManager) (*chi.Mux, chi.Router) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.HandleHealth)
	r.Get("/health/live", h.health.HandleLiveness)
	r.Get("/health/ready", h.health.HandleReadiness)

	var apiRouter chi.Router

	r.Route("/api", func(api chi.Router) {
		// Public endpoints: signup, login, and machine callbacks from
		// the cry classifier. The classifier runs inside the same
		// network and does not hold guardian tokens.
		api.Group(func(r chi.Router) {
			r.Post("/auth/register", h.HandleRegister)
			r.Post("/auth/login", h.HandleLogin)

			r.Post("/events/create", h.HandleCreateEvent)
			r.Post("/analysis/result", h.HandleAnalysisResult)
		})

		api.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))
			apiRouter = r

			r.Route("/reports", func(r chi.Router) {
				r.Get("/summary/{infantId}", h.HandleReportSummary)
				r.Get("/text/{infantId}", h.HandleReportText)
				r.Post("/generate/{infantId}", h.HandleGenerateReport)
				r.Get("/{infantId}", h.HandleListReports)
			})

			r.Route("/actions", func(r chi.Router) {
				r.Get("/dashboard", h.HandleActionDashboard)
				r.Post("/record", h.HandleRecordAction)
				r.Put("/{actionId}", h.HandleUpdateAction)
				r.Delete("/{actionId}", h.HandleDeleteAction)
			})

			r.Post("/chatbot", h.HandleChatbot)

			r.Route("/infants", func(r chi.Router) {
				r.Get("/", h.HandleListInfants)
				r.Post("/", h.HandleCreateInfant)
				r.Delete("/{infantId}", h.HandleDeleteInfant)
			})
		})
	})

	return r, apiRouter
}
