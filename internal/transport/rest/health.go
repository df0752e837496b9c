package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse is the liveness payload. It intentionally carries no
// component detail: the store is in-process, so a responding server
// is a healthy server.
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Success:   true,
		Message:   "Expense Tracker API is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
