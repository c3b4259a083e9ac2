package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saascontratos/contratos/internal/auth"
	"github.com/saascontratos/contratos/internal/contracts"
	"github.com/saascontratos/contratos/internal/ingestion"
)

// Deps are the services the HTTP layer dispatches to.
type Deps struct {
	Auth      *auth.Service
	Tokens    *auth.Tokens
	Contracts *contracts.Service
	Ingestion *ingestion.Service

	CookieSecure bool
	// AuthRateLimit caps auth requests per client IP per minute.
	AuthRateLimit int
}

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(d Deps) http.Handler {
	h := &Handlers{
		authSvc:      d.Auth,
		tokens:       d.Tokens,
		contractSvc:  d.Contracts,
		ingestionSvc: d.Ingestion,
		cookieSecure: d.CookieSecure,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	limit := d.AuthRateLimit
	if limit <= 0 {
		limit = 20
	}
	limiter := newRateLimiter(limit, time.Minute)

	r.Route("/api/v1", func(r chi.Router) {
		// Public.
		r.Get("/extenso", h.SpellAmount)
		r.Group(func(r chi.Router) {
			r.Use(limiter.middleware)
			r.Post("/auth/register", h.Register)
			r.Post("/auth/login", h.Login)
		})
		r.Post("/auth/logout", h.Logout)

		// Authenticated.
		r.Group(func(r chi.Router) {
			r.Use(authenticate(d.Tokens))

			r.Get("/auth/me", h.Me)
			r.Get("/dashboard", h.GetDashboard)

			r.Get("/contracts", h.ListContracts)
			r.Post("/contracts", h.CreateContract)
			r.Post("/contracts/import", h.ImportContracts)
			r.Get("/contracts/{id}", h.GetContract)
			r.Put("/contracts/{id}", h.UpdateContract)
			r.Delete("/contracts/{id}", h.DeleteContract)
			r.Get("/contracts/{id}/form", h.GetContractForm)
			r.Get("/contracts/{id}/document", h.GetContractDocument)
			r.Get("/contracts/{id}/pdf", h.GetContractPDF)
		})
	})

	return r
}
