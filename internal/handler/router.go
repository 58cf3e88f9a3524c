package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devanshg/splitmate/internal/auth"
	"github.com/devanshg/splitmate/internal/middleware"
)

// RouterConfig bundles the collaborators the router wires together.
type RouterConfig struct {
	Auth           *AuthHandler
	Expenses       *ExpenseHandler
	Groups         *GroupHandler
	JWTManager     *auth.JWTManager
	AllowedOrigins []string
}

// NewRouter builds the full route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusOK, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", cfg.Auth.Register)
			r.Post("/login", cfg.Auth.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.JWTManager))

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", cfg.Expenses.ListAll)
				r.Post("/", cfg.Expenses.CreateGroupEqual)
				r.Post("/advanced", cfg.Expenses.CreateAdvanced)

				r.Route("/personal", func(r chi.Router) {
					r.Get("/", cfg.Expenses.ListPersonal)
					r.Post("/", cfg.Expenses.CreatePersonal)
					r.Put("/{id}", cfg.Expenses.UpdatePersonal)
					r.Delete("/{id}", cfg.Expenses.DeletePersonal)
				})

				r.Get("/group/{groupId}", cfg.Expenses.ListByGroup)

				r.Get("/{id}", cfg.Expenses.Get)
				r.Put("/{id}", cfg.Expenses.UpdateGroup)
				r.Delete("/{id}", cfg.Expenses.DeleteGroup)
			})

			r.Route("/groups", func(r chi.Router) {
				r.Post("/", cfg.Groups.Create)
				r.Get("/", cfg.Groups.List)
				r.Get("/{id}", cfg.Groups.Get)
				r.Post("/{id}/members", cfg.Groups.AddMember)
				r.Delete("/{id}", cfg.Groups.Delete)
			})
		})
	})

	return r
}
