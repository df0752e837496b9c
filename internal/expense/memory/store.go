// Package memory holds the authoritative in-process expense
// collection. It is the default store: volatile, its lifetime is the
// lifetime of the server process.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
)

// Store keeps records in insertion order and allocates ids from a
// monotonically increasing counter that never reuses values. Handlers
// run on concurrent goroutines, so the collection is mutex-guarded;
// each operation is atomic from the caller's perspective.
type Store struct {
	mu       sync.RWMutex
	expenses []*expense.Expense
	nextID   int64
}

func NewStore() *Store {
	return &Store{
		expenses: make([]*expense.Expense, 0),
		nextID:   1,
	}
}

// List returns records matching every supplied predicate, sorted by
// date descending. Equal dates keep insertion order.
func (s *Store) List(filter expense.Filter) ([]*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, startOK := expense.ParseDay(filter.StartDate)
	end, endOK := expense.ParseDay(filter.EndDate)

	result := make([]*expense.Expense, 0, len(s.expenses))
	for _, exp := range s.expenses {
		if filter.Category != "" && !strings.EqualFold(exp.Category, filter.Category) {
			continue
		}
		if filter.StartDate != "" || filter.EndDate != "" {
			day, ok := expense.ParseDay(exp.Date)
			// an unparseable bound or record date satisfies no comparison
			if filter.StartDate != "" && (!ok || !startOK || day.Before(start)) {
				continue
			}
			if filter.EndDate != "" && (!ok || !endOK || day.After(end)) {
				continue
			}
		}
		result = append(result, copyOf(exp))
	}

	sort.SliceStable(result, func(i, j int) bool {
		di, _ := expense.ParseDay(result[i].Date)
		dj, _ := expense.ParseDay(result[j].Date)
		return dj.Before(di)
	})

	return result, nil
}

func (s *Store) GetByID(id int64) (*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		return copyOf(s.expenses[idx]), nil
	}
	return nil, internal.ErrExpenseNotFound
}

// Create assigns the next id and appends. The caller stamps the
// timestamps; missing ones are defaulted here so the createdAt <=
// updatedAt invariant holds regardless of entry path.
func (s *Store) Create(exp *expense.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp.ID = s.nextID
	s.nextID++

	if exp.CreatedAt.IsZero() {
		exp.CreatedAt = time.Now()
	}
	if exp.UpdatedAt.IsZero() {
		exp.UpdatedAt = exp.CreatedAt
	}

	s.expenses = append(s.expenses, copyOf(exp))
	return nil
}

// Update replaces the stored record wholesale. The service builds the
// replacement by merging the partial payload into the stored state,
// so only supplied fields differ.
func (s *Store) Update(exp *expense.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(exp.ID)
	if idx < 0 {
		return internal.ErrExpenseNotFound
	}

	s.expenses[idx] = copyOf(exp)
	return nil
}

// Delete detaches the record and returns its prior state. No
// tombstone is kept and the id is never reissued.
func (s *Store) Delete(id int64) (*expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, internal.ErrExpenseNotFound
	}

	removed := s.expenses[idx]
	s.expenses = append(s.expenses[:idx], s.expenses[idx+1:]...)
	return removed, nil
}

// Stats computes the aggregate snapshot over the whole collection in
// a single pass.
func (s *Store) Stats() (*expense.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &expense.Stats{
		CategoryStats: make(map[string]expense.BucketStat),
		MonthlyStats:  make(map[string]expense.BucketStat),
	}

	for _, exp := range s.expenses {
		stats.TotalExpenses++
		stats.TotalAmount += exp.Amount

		cat := stats.CategoryStats[exp.Category]
		cat.Count++
		cat.Amount += exp.Amount
		stats.CategoryStats[exp.Category] = cat

		month := expense.MonthKey(exp.Date)
		mon := stats.MonthlyStats[month]
		mon.Count++
		mon.Amount += exp.Amount
		stats.MonthlyStats[month] = mon
	}

	if stats.TotalExpenses > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.TotalExpenses)
	}

	return stats, nil
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id int64) int {
	for i, exp := range s.expenses {
		if exp.ID == id {
			return i
		}
	}
	return -1
}

func copyOf(exp *expense.Expense) *expense.Expense {
	out := *exp
	return &out
}
