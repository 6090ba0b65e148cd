package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brainscroller/site/internal/repository"
)

// Handler serves the process-level endpoints (health).
type Handler struct {
	db   repository.DB // nil when no store is configured
	name string
}

// New creates a Handler. db may be nil.
func New(db repository.DB, name string) *Handler {
	return &Handler{db: db, name: name}
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
