package expense

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListExpenses(filter Filter) ([]*Expense, error)
	GetExpense(id int64) (*Expense, error)
	CreateExpense(payload ExpensePayload) (*Expense, error)
	UpdateExpense(id int64, payload ExpensePayload) (*Expense, error)
	DeleteExpense(id int64) (*Expense, error)
	GetStats() (*Stats, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}
	// "all" is the UI's no-filter sentinel
	if category := r.URL.Query().Get("category"); !strings.EqualFold(category, "all") {
		filter.Category = category
	}

	expenses, err := h.Service.ListExpenses(filter)
	if err != nil {
		h.HandleServiceError(w, err, "Error fetching expenses")
		return
	}

	h.WriteList(w, expenses, len(expenses))
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.expenseID(w, r)
	if !ok {
		return
	}

	exp, err := h.Service.GetExpense(id)
	if err != nil {
		h.HandleServiceError(w, err, "Error fetching expense")
		return
	}

	h.WriteData(w, http.StatusOK, exp)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var payload ExpensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	exp, err := h.Service.CreateExpense(payload)
	if err != nil {
		h.HandleServiceError(w, err, "Error creating expense")
		return
	}

	h.WriteDataMessage(w, http.StatusCreated, exp, "Expense created successfully")
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.expenseID(w, r)
	if !ok {
		return
	}

	var payload ExpensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.Logger.Error("UpdateExpense: invalid request body", "error", err, "expense_id", id)
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	exp, err := h.Service.UpdateExpense(id, payload)
	if err != nil {
		h.HandleServiceError(w, err, "Error updating expense")
		return
	}

	h.WriteDataMessage(w, http.StatusOK, exp, "Expense updated successfully")
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.expenseID(w, r)
	if !ok {
		return
	}

	exp, err := h.Service.DeleteExpense(id)
	if err != nil {
		h.HandleServiceError(w, err, "Error deleting expense")
		return
	}

	h.WriteDataMessage(w, http.StatusOK, exp, "Expense deleted successfully")
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats()
	if err != nil {
		h.HandleServiceError(w, err, "Error fetching statistics")
		return
	}

	h.WriteData(w, http.StatusOK, stats)
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.WriteData(w, http.StatusOK, RecommendedCategories)
}

func (h *Handler) expenseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid expense ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "Invalid expense ID")
		return 0, false
	}
	return id, true
}
