package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
)

// Envelope is the uniform response wrapper used by every endpoint.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Total   *int     `json:"total,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// BaseHandler provides the envelope writers shared by HTTP handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

func (h *BaseHandler) WriteEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.Logger.Error("failed to encode response", "error", err)
	}
}

func (h *BaseHandler) WriteData(w http.ResponseWriter, status int, data any) {
	h.WriteEnvelope(w, status, Envelope{Success: true, Data: data})
}

func (h *BaseHandler) WriteDataMessage(w http.ResponseWriter, status int, data any, message string) {
	h.WriteEnvelope(w, status, Envelope{Success: true, Data: data, Message: message})
}

// WriteList attaches the filtered result count to a successful read.
func (h *BaseHandler) WriteList(w http.ResponseWriter, data any, total int) {
	h.WriteEnvelope(w, http.StatusOK, Envelope{Success: true, Data: data, Total: &total})
}

func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.WriteEnvelope(w, status, Envelope{Success: false, Message: message})
}

// HandleServiceError maps service outcomes to status codes and
// envelopes. Unrecognized errors become a 500 with the generic
// message plus the underlying fault text.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := internal.IsAppError(err); ok {
		switch appErr.Type {
		case internal.ErrorTypeValidation:
			h.WriteEnvelope(w, appErr.StatusCode, Envelope{
				Success: false,
				Message: appErr.Message,
				Errors:  appErr.Violations,
			})
			return
		case internal.ErrorTypeNotFound:
			h.WriteError(w, appErr.StatusCode, appErr.Message)
			return
		default:
			env := Envelope{Success: false, Message: appErr.Message}
			if appErr.Cause != nil {
				env.Error = appErr.Cause.Error()
			}
			h.WriteEnvelope(w, appErr.StatusCode, env)
			return
		}
	}

	h.Logger.Error("unexpected service error", "error", err)
	h.WriteEnvelope(w, http.StatusInternalServerError, Envelope{
		Success: false,
		Message: fallback,
		Error:   err.Error(),
	})
}
