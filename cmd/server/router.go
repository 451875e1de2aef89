package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pourover/drinks-api/internal/api"
	apiMiddleware "github.com/pourover/drinks-api/internal/api/middleware"
	"github.com/pourover/drinks-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.CORSMiddleware)
	r.Use(apiMiddleware.TraceMiddleware)

	drinkHandler := api.NewDrinkHandler(app.drinkStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.verifier)

	// Unmatched routes and wrong methods answer in the same error shape
	// as everything else.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, api.MsgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, api.MsgMethodNotAllowed)
	})

	// Public menu endpoint
	r.Get("/drinks", drinkHandler.ListDrinks)

	// Permission-gated endpoints
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequirePermission(api.PermissionReadDetail))
		r.Get("/drinks-detail", drinkHandler.ListDrinksDetail)
	})
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequirePermission(api.PermissionCreate))
		r.Post("/drinks", drinkHandler.CreateDrink)
	})
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequirePermission(api.PermissionUpdate))
		r.Patch("/drinks/{id:[0-9]+}", drinkHandler.UpdateDrink)
	})
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequirePermission(api.PermissionDelete))
		r.Delete("/drinks/{id:[0-9]+}", drinkHandler.DeleteDrink)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
