package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/roamdrive/rental-reservation-system/internal/handlers"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Locations
	api.HandleFunc("/locations", h.GetLocations).Methods(http.MethodGet, http.MethodOptions)

	// Wizard sessions
	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}", h.EndSession).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/selection", h.UpdateSelection).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/advance", h.Advance).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/back", h.Back).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/quote", h.GetQuote).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/document", h.GetDocument).Methods(http.MethodGet, http.MethodOptions)

	// Health check
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
