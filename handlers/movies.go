package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"hometheater/models"
	"hometheater/services/catalog"

	"github.com/gorilla/mux"
)

type catalogService interface {
	Build() ([]models.CatalogEntry, error)
	Entry(id string) (models.CatalogEntry, error)
}

var _ catalogService = (*catalog.Service)(nil)

type MoviesHandler struct {
	Service catalogService
}

func NewMoviesHandler(service catalogService) *MoviesHandler {
	return &MoviesHandler{Service: service}
}

// List rebuilds the catalog from the media root and returns it as a JSON
// array. A missing or unreadable root is a server fault, never an empty
// catalog: operators must be able to tell "no movies yet" apart from a
// misconfigured path.
func (h *MoviesHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.Build()
	if err != nil {
		log.Printf("[movies] catalog build failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch movies")
		return
	}
	if entries == nil {
		entries = []models.CatalogEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Detail resolves a single movie folder by id.
func (h *MoviesHandler) Detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := strings.TrimSpace(vars["id"])
	if id == "" {
		writeError(w, http.StatusBadRequest, "movie id is required")
		return
	}

	entry, err := h.Service.Entry(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "movie not found")
			return
		}
		log.Printf("[movies] detail lookup for %q failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch movie details")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// writeError emits the {"error": ...} envelope the browsing UI expects.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
