package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/transport/middleware"
	"github.com/frahmantamala/expense-tracker/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires the middleware chain and the API surface
// onto the router.
func RegisterAllRoutes(router *chi.Mux, expenseHandler *expense.Handler, allowedOrigins []string, logger *slog.Logger) {
	healthHandler := NewHealthHandler()

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery(logger))

	router.NotFound(routeNotFoundHandler)
	router.MethodNotAllowed(routeNotFoundHandler)

	// OpenAPI document at root, UI under /swagger
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/categories", expenseHandler.GetCategories)

		r.Route("/expenses", func(er chi.Router) {
			er.Get("/", expenseHandler.ListExpenses)
			er.Post("/", expenseHandler.CreateExpense)
			er.Get("/stats", expenseHandler.GetStats)
			er.Get("/{id}", expenseHandler.GetExpense)
			er.Put("/{id}", expenseHandler.UpdateExpense)
			er.Delete("/{id}", expenseHandler.DeleteExpense)
		})
	})
}

func routeNotFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": "Route not found",
	})
}
