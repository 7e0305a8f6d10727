package http

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message, details string) {
	respondJSON(w, status, errorEnvelope{Error: message, Details: details})
}
