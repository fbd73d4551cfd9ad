package api

import (
	"net/http"

	"hometheater/handlers"

	"github.com/gorilla/mux"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleOptions handles OPTIONS requests for CORS preflight
func handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Register mounts API endpoints onto the provided router.
func Register(r *mux.Router, moviesHandler *handlers.MoviesHandler) {
	api := r.PathPrefix("/api").Subrouter()

	// Add CORS middleware to API subrouter
	api.Use(corsMiddleware)

	api.HandleFunc("/movies", moviesHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/movies", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/movies/{id}", moviesHandler.Detail).Methods(http.MethodGet)
	api.HandleFunc("/movies/{id}", handleOptions).Methods(http.MethodOptions)
}
