package expense

import (
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/validation"
)

// Repository defines the data access methods for expenses. Both the
// in-memory store and the sqlite store implement it.
type Repository interface {
	List(filter Filter) ([]*Expense, error)
	GetByID(id int64) (*Expense, error)
	Create(exp *Expense) error
	Update(exp *Expense) error
	Delete(id int64) (*Expense, error)
	Stats() (*Stats, error)
}

// Service holds the expense business logic: validation, the
// merge-then-validate update flow, and outcome mapping.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// validateCandidate runs the full rule set. Every rule is checked
// independently so all violations are reported together, in order.
func validateCandidate(c Candidate) []string {
	return validation.New().
		Rule("title", "Title is required", func() bool {
			return strings.TrimSpace(c.Title) != ""
		}).
		Rule("amount", "Amount must be a positive number", func() bool {
			return c.AmountOK && c.Amount > 0
		}).
		Rule("category", "Category is required", func() bool {
			return strings.TrimSpace(c.Category) != ""
		}).
		Rule("date", "Date is required", func() bool {
			return c.Date != ""
		}).
		Run()
}

func (s *Service) ListExpenses(filter Filter) ([]*Expense, error) {
	expenses, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err)
		return nil, internal.NewInternalError("Error fetching expenses", err)
	}
	return expenses, nil
}

func (s *Service) GetExpense(id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("Error fetching expense", err)
	}
	return exp, nil
}

func (s *Service) CreateExpense(payload ExpensePayload) (*Expense, error) {
	if violations := validateCandidate(payload.Candidate()); len(violations) > 0 {
		s.logger.Warn("expense validation failed", "violations", violations)
		return nil, internal.NewValidationError(violations)
	}

	exp := NewExpense(payload)
	if err := s.repo.Create(exp); err != nil {
		s.logger.Error("failed to create expense", "error", err)
		return nil, internal.NewInternalError("Error creating expense", err)
	}

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"amount", exp.Amount,
		"category", exp.Category)

	return exp, nil
}

// UpdateExpense merges the stored record with the partial payload,
// re-validates the merged result with the same rules as creation, and
// commits only on success. Nothing is mutated on a validation failure.
func (s *Service) UpdateExpense(id int64, payload ExpensePayload) (*Expense, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to load expense for update", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("Error updating expense", err)
	}

	if violations := validateCandidate(existing.CandidateWith(payload)); len(violations) > 0 {
		s.logger.Warn("expense update validation failed", "expense_id", id, "violations", violations)
		return nil, internal.NewValidationError(violations)
	}

	updated := existing.Merged(payload)
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(updated); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("Error updating expense", err)
	}

	s.logger.Info("expense updated", "expense_id", id)
	return updated, nil
}

func (s *Service) DeleteExpense(id int64) (*Expense, error) {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("Error deleting expense", err)
	}

	s.logger.Info("expense deleted", "expense_id", id)
	return deleted, nil
}

func (s *Service) GetStats() (*Stats, error) {
	stats, err := s.repo.Stats()
	if err != nil {
		s.logger.Error("failed to compute stats", "error", err)
		return nil, internal.NewInternalError("Error fetching statistics", err)
	}
	return stats, nil
}
