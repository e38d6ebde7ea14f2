// internal/handlers/http.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/halfsuit/fish/internal/game"
)

// PingHandler responds to health checks.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// HalfSuitsHandler serves the static half-suit reference data (name, suit,
// rank list, display label). It is identical across all rooms.
func HalfSuitsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(game.HalfSuits); err != nil {
		http.Error(w, "encoding error", http.StatusInternalServerError)
	}
}
