package expense

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount decodes a JSON amount that may arrive as a number or as a
// numeric string ("12.50"). Valid is false when the value could not
// be interpreted as a number; validation turns that into a rule
// violation rather than a decode failure, so the other field rules
// still get reported.
type Amount struct {
	Value float64
	Valid bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		a.Value, a.Valid = num, true
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			a.Value, a.Valid = v, true
		}
		return nil
	}

	// arrays, objects: leave invalid and let validation report it
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value)
}

// ExpensePayload is the request body for both create and partial
// update. Nil pointers mean the field was not supplied.
type ExpensePayload struct {
	Title       *string `json:"title"`
	Amount      *Amount `json:"amount"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
}

// Candidate is the full record a payload would produce, used to run
// the validation rules. For updates it is built on top of the stored
// record so partial payloads are validated in context.
type Candidate struct {
	Title    string
	Amount   float64
	AmountOK bool
	Category string
	Date     string
}

// Candidate builds a validation candidate from a create payload.
func (p ExpensePayload) Candidate() Candidate {
	var c Candidate
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Amount != nil {
		c.Amount = p.Amount.Value
		c.AmountOK = p.Amount.Valid
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Date != nil {
		c.Date = *p.Date
	}
	return c
}

// CandidateWith overlays a partial payload on an existing record.
func (e *Expense) CandidateWith(p ExpensePayload) Candidate {
	c := Candidate{
		Title:    e.Title,
		Amount:   e.Amount,
		AmountOK: true,
		Category: e.Category,
		Date:     e.Date,
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Amount != nil {
		c.Amount = p.Amount.Value
		c.AmountOK = p.Amount.Valid
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Date != nil {
		c.Date = *p.Date
	}
	return c
}

// Filter narrows a list query. Zero values mean "no constraint".
// Category matches case-insensitively; the date bounds are inclusive
// and compared at day precision.
type Filter struct {
	Category  string
	StartDate string
	EndDate   string
}

func (f Filter) IsZero() bool {
	return f.Category == "" && f.StartDate == "" && f.EndDate == ""
}

// BucketStat is one group-by bucket of the statistics snapshot.
type BucketStat struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// Stats is the on-demand aggregate over the whole collection. It is
// computed, never stored.
type Stats struct {
	TotalExpenses int                   `json:"totalExpenses"`
	TotalAmount   float64               `json:"totalAmount"`
	AverageAmount float64               `json:"averageAmount"`
	CategoryStats map[string]BucketStat `json:"categoryStats"`
	MonthlyStats  map[string]BucketStat `json:"monthlyStats"`
}
