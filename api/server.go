/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:     Unique ID per request for tracing
  2. Recoverer:     Panic recovery (500 instead of crash)
  3. RequestLogger: Structured request logging via zerolog
  4. CORS:          Cross-origin requests for the UI shell

ROUTE GROUPS:
  /api/auth/*       Login, session check, logout, password change
  /api/products/*   Inventory catalog
  /api/sales/*      Sales log
  /api/orders       Order placement
  /api/metrics      Dashboard summary cards
  /api/reports/*    Expense and invoice aggregates
  /api/theme        UI theme preference

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: RequestLogger and RequireSession
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. allowedOrigins
// holds the origins the UI shell is served from.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(h.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Get("/session", h.CheckSession)
			r.Post("/logout", h.Logout)
			r.With(RequireSession(h.Auth)).Post("/password", h.ChangePassword)
		})

		// Product routes
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/{id}", h.GetProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})

		// Sale routes
		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.ListSales)
			r.Get("/{id}", h.GetSale)
			r.Put("/{id}", h.UpdateSale)
			r.Delete("/{id}", h.DeleteSale)
		})

		// Order placement
		r.Post("/orders", h.PlaceOrder)

		// Dashboard metrics
		r.Get("/metrics", h.MetricsSummary)

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/expenses", h.Expenses)
			r.Get("/invoices", h.Invoices)
		})

		// Theme preference
		r.Get("/theme", h.GetTheme)
		r.Put("/theme", h.SetTheme)
	})

	return r
}
