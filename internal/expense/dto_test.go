package expense_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/internal/expense"
)

var _ = Describe("ExpensePayload decoding", func() {
	decode := func(body string) expense.ExpensePayload {
		var payload expense.ExpensePayload
		Expect(json.Unmarshal([]byte(body), &payload)).To(Succeed())
		return payload
	}

	It("accepts a numeric amount", func() {
		payload := decode(`{"amount": 12.5}`)

		Expect(payload.Amount).ToNot(BeNil())
		Expect(payload.Amount.Valid).To(BeTrue())
		Expect(payload.Amount.Value).To(Equal(12.5))
	})

	It("accepts a numeric string amount", func() {
		payload := decode(`{"amount": "12.50"}`)

		Expect(payload.Amount).ToNot(BeNil())
		Expect(payload.Amount.Valid).To(BeTrue())
		Expect(payload.Amount.Value).To(Equal(12.5))
	})

	It("marks a non-numeric string amount invalid instead of failing the decode", func() {
		payload := decode(`{"title": "Lunch", "amount": "abc"}`)

		Expect(payload.Title).ToNot(BeNil())
		Expect(payload.Amount).ToNot(BeNil())
		Expect(payload.Amount.Valid).To(BeFalse())
	})

	It("leaves unsupplied fields nil", func() {
		payload := decode(`{"title": "Lunch"}`)

		Expect(payload.Title).ToNot(BeNil())
		Expect(payload.Amount).To(BeNil())
		Expect(payload.Category).To(BeNil())
		Expect(payload.Date).To(BeNil())
		Expect(payload.Description).To(BeNil())
	})

	It("re-encodes the amount as a number", func() {
		out, err := json.Marshal(expense.Amount{Value: 15, Valid: true})

		Expect(err).ToNot(HaveOccurred())
		Expect(string(out)).To(Equal("15"))
	})
})

var _ = Describe("Date helpers", func() {
	Describe("ParseDay", func() {
		It("parses day-precision dates", func() {
			day, ok := expense.ParseDay("2024-03-01")

			Expect(ok).To(BeTrue())
			Expect(day.Format("2006-01-02")).To(Equal("2024-03-01"))
		})

		It("drops the time-of-day component", func() {
			day, ok := expense.ParseDay("2024-03-01T18:30:00Z")

			Expect(ok).To(BeTrue())
			Expect(day.Format("2006-01-02")).To(Equal("2024-03-01"))
		})

		It("rejects unparseable input", func() {
			_, ok := expense.ParseDay("not-a-date")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("MonthKey", func() {
		It("derives YYYY-MM from a date", func() {
			Expect(expense.MonthKey("2024-03-15")).To(Equal("2024-03"))
		})

		It("falls back to the raw prefix for unparseable dates", func() {
			Expect(expense.MonthKey("garbage-date")).To(Equal("garbage"))
		})
	})
})

var _ = Describe("Merged", func() {
	It("overwrites only the supplied fields", func() {
		base := &expense.Expense{
			ID:          7,
			Title:       "Lunch",
			Amount:      12.5,
			Category:    "Food",
			Date:        "2024-03-01",
			Description: "weekday",
		}

		title := "Dinner"
		merged := base.Merged(expense.ExpensePayload{Title: &title})

		Expect(merged.Title).To(Equal("Dinner"))
		Expect(merged.Amount).To(Equal(12.5))
		Expect(merged.Category).To(Equal("Food"))
		Expect(merged.Date).To(Equal("2024-03-01"))
		Expect(merged.Description).To(Equal("weekday"))
		Expect(merged.ID).To(Equal(int64(7)))

		// the original record is untouched
		Expect(base.Title).To(Equal("Lunch"))
	})
})
