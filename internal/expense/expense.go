package expense

import (
	"strings"
	"time"
)

// Expense is one recorded expense. ID is assigned by the store and is
// strictly increasing; ids are never reused, even after deletion.
// Date is kept as the string the client sent: day-precision ISO 8601
// is expected but its calendar validity is not checked.
type Expense struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null"`
	Date        string    `json:"date" gorm:"not null"`
	Description string    `json:"description" gorm:"default:''"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

// RecommendedCategories is the category set the UI offers. It is a
// recommendation only; the server accepts any non-empty category.
var RecommendedCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Travel",
	"Education",
	"Personal Care",
	"Other",
}

// NewExpense builds a record from a validated create payload and
// stamps both timestamps. The store assigns the id.
func NewExpense(p ExpensePayload) *Expense {
	now := time.Now()
	exp := &Expense{
		Title:     *p.Title,
		Amount:    p.Amount.Value,
		Category:  *p.Category,
		Date:      *p.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Description != nil {
		exp.Description = *p.Description
	}
	return exp
}

// Merged returns a copy of e with only the fields present in the
// payload overwritten. The caller is responsible for refreshing
// UpdatedAt once the merge is committed.
func (e *Expense) Merged(p ExpensePayload) *Expense {
	out := *e
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Amount != nil {
		out.Amount = p.Amount.Value
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	return &out
}

var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDay parses a date string at day precision, dropping any
// time-of-day component. ok is false for unparseable input; such
// records are excluded by date-range filters.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// MonthKey derives the YYYY-MM statistics bucket from a date string,
// falling back to the raw prefix when the date does not parse.
func MonthKey(date string) string {
	if t, ok := ParseDay(date); ok {
		return t.Format("2006-01")
	}
	if len(date) > 7 {
		return date[:7]
	}
	return date
}
