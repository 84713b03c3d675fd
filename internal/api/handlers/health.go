package handlers

import (
	"net/http"

	"github.com/justzen0/random-walker/internal/api/dto"
)

// NetworkStats describes the loaded road network.
type NetworkStats interface {
	Name() string
	NodeCount() int
	EdgeCount() int
}

type HealthHandler struct {
	Network NetworkStats
}

// Health reports liveness and the size of the loaded network.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.HealthResponse{Status: "ok"}
	if h.Network != nil {
		res.Area = h.Network.Name()
		res.Nodes = h.Network.NodeCount()
		res.Edges = h.Network.EdgeCount()
	}
	writeJSON(w, r, http.StatusOK, res)
}
