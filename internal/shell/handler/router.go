package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/health"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/middleware"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/session"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Planning  *PlanningHandler
	Chat      *ChatHandler
	Health    *health.Handler
	Guard     *session.Guard
}

// NewRouter creates the chi router with all shell routes registered. Each
// dashboard subtree carries its own allowed-role set; everything else is
// reachable signed out.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.PrometheusMetrics())
	r.Use(middleware.RequestLogger(logger))

	// Health and metrics
	r.Get("/health/live", h.Health.LivenessHandler())
	r.Get("/health/ready", h.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Public surface: landing, auth, newsletter.
	r.Get(LoginPath, h.Auth.LoginPrompt)
	r.With(ContentTypeJSON).Post(LoginPath, h.Auth.Login)
	r.With(ContentTypeJSON).Post("/register", h.Auth.Register)
	r.Post("/logout", h.Auth.Logout)
	r.With(ContentTypeJSON).Post("/newsletter/subscribe", h.Auth.Subscribe)

	// Role-gated dashboards.
	r.Route("/dashboard", func(r chi.Router) {
		r.With(RequireRoles(h.Guard, session.RoleTraveler)).
			Get("/traveler", h.Dashboard.Traveler)
		r.With(RequireRoles(h.Guard, session.RoleAccommodation)).
			Get("/accommodation", h.Dashboard.Accommodation)
		r.With(RequireRoles(h.Guard, session.RoleTransport, session.RoleGuide)).
			Get("/transport", h.Dashboard.Transport)
		r.With(RequireRoles(h.Guard, session.RoleAdmin)).
			Get("/admin", h.Dashboard.Admin)
	})

	// Trip planning: traveler-only, like the web client's planning panel.
	r.Route("/planning", func(r chi.Router) {
		r.Use(RequireRoles(h.Guard, session.RoleTraveler))
		r.Use(ContentTypeJSON)

		r.Get("/", h.Planning.GetPlan)
		r.Get("/summary", h.Planning.GetSummary)
		r.Delete("/", h.Planning.Clear)
		r.Post("/{bucket}/items", h.Planning.AddItem)
		r.Delete("/{bucket}/items/{itemId}", h.Planning.RemoveItem)
	})

	// Chat panel: any signed-in role.
	r.Route("/chat", func(r chi.Router) {
		r.Use(RequireRoles(h.Guard, session.ValidRoles()...))
		r.Use(ContentTypeJSON)

		r.Get("/conversations", h.Chat.Conversations)
		r.Get("/conversations/{conversationId}", h.Chat.Open)
		r.Post("/conversations/{conversationId}/messages", h.Chat.Send)
		r.Put("/conversations/{conversationId}/read", h.Chat.MarkRead)
		r.Post("/bot", h.Chat.AskBot)
	})

	return r
}
