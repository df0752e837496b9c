package rest_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense/memory"
	"github.com/frahmantamala/expense-tracker/internal/transport/rest"
)

func TestRouter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Router Suite")
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Total   *int            `json:"total"`
	Error   string          `json:"error"`
}

var _ = Describe("API", func() {
	var router *chi.Mux

	request := func(method, path string, body string) (*httptest.ResponseRecorder, envelope) {
		var reader *bytes.Reader
		if body != "" {
			reader = bytes.NewReader([]byte(body))
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, reader)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var env envelope
		Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(Succeed())
		return rec, env
	}

	decodeExpense := func(raw json.RawMessage) expense.Expense {
		var exp expense.Expense
		Expect(json.Unmarshal(raw, &exp)).To(Succeed())
		return exp
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store := memory.NewStore()
		service := expense.NewService(store, logger)
		handler := expense.NewHandler(service)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, handler, []string{"http://localhost:5173"}, logger)
	})

	Describe("expense lifecycle", func() {
		It("creates, lists, updates, deletes and then 404s", func() {
			// create with a string amount
			rec, env := request(http.MethodPost, "/api/expenses",
				`{"title":"Lunch","amount":"12.50","category":"Food","date":"2024-03-01"}`)
			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(env.Success).To(BeTrue())
			Expect(env.Message).To(Equal("Expense created successfully"))

			created := decodeExpense(env.Data)
			Expect(created.ID).To(Equal(int64(1)))
			Expect(created.Amount).To(Equal(12.5))

			// unfiltered list
			rec, env = request(http.MethodGet, "/api/expenses", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(env.Total).ToNot(BeNil())
			Expect(*env.Total).To(Equal(1))

			// partial update: amount only, title untouched
			rec, env = request(http.MethodPut, "/api/expenses/1", `{"amount":"15.00"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(env.Message).To(Equal("Expense updated successfully"))

			updated := decodeExpense(env.Data)
			Expect(updated.Amount).To(Equal(15.0))
			Expect(updated.Title).To(Equal("Lunch"))

			// delete, then the id is gone
			rec, env = request(http.MethodDelete, "/api/expenses/1", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(env.Message).To(Equal("Expense deleted successfully"))

			rec, env = request(http.MethodGet, "/api/expenses/1", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("Expense not found"))
		})
	})

	Describe("validation", func() {
		It("reports every violated rule with a 400", func() {
			rec, env := request(http.MethodPost, "/api/expenses",
				`{"title":"  ","amount":-1,"category":""}`)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("Validation failed"))
			Expect(env.Errors).To(Equal([]string{
				"Title is required",
				"Amount must be a positive number",
				"Category is required",
				"Date is required",
			}))
		})

		It("rejects malformed JSON bodies", func() {
			rec, env := request(http.MethodPost, "/api/expenses", `{not-json`)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(env.Message).To(Equal("Invalid request body"))
		})

		It("rejects a non-numeric id", func() {
			rec, env := request(http.MethodGet, "/api/expenses/abc", "")

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(env.Message).To(Equal("Invalid expense ID"))
		})
	})

	Describe("filtering", func() {
		BeforeEach(func() {
			_, env := request(http.MethodPost, "/api/expenses",
				`{"title":"Groceries","amount":10,"category":"Food","date":"2024-03-01"}`)
			Expect(env.Success).To(BeTrue())
			_, env = request(http.MethodPost, "/api/expenses",
				`{"title":"Taxi","amount":20,"category":"Travel","date":"2024-03-05"}`)
			Expect(env.Success).To(BeTrue())
		})

		It("matches categories case-insensitively", func() {
			rec, env := request(http.MethodGet, "/api/expenses?category=food", "")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(*env.Total).To(Equal(1))
		})

		It("treats category=all as no filter", func() {
			_, env := request(http.MethodGet, "/api/expenses?category=all", "")
			Expect(*env.Total).To(Equal(2))
		})

		It("applies inclusive date bounds", func() {
			_, env := request(http.MethodGet, "/api/expenses?startDate=2024-03-01&endDate=2024-03-05", "")
			Expect(*env.Total).To(Equal(2))

			_, env = request(http.MethodGet, "/api/expenses?startDate=2024-03-02", "")
			Expect(*env.Total).To(Equal(1))
		})
	})

	Describe("statistics", func() {
		It("aggregates totals, averages and category buckets", func() {
			_, env := request(http.MethodPost, "/api/expenses",
				`{"title":"Groceries","amount":10,"category":"Food","date":"2024-03-01"}`)
			Expect(env.Success).To(BeTrue())
			_, env = request(http.MethodPost, "/api/expenses",
				`{"title":"Taxi","amount":20,"category":"Travel","date":"2024-03-01"}`)
			Expect(env.Success).To(BeTrue())

			rec, env := request(http.MethodGet, "/api/expenses/stats", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var stats expense.Stats
			Expect(json.Unmarshal(env.Data, &stats)).To(Succeed())
			Expect(stats.TotalExpenses).To(Equal(2))
			Expect(stats.TotalAmount).To(Equal(30.0))
			Expect(stats.AverageAmount).To(Equal(15.0))
			Expect(stats.CategoryStats["Food"].Amount).To(Equal(10.0))
			Expect(stats.CategoryStats["Travel"].Amount).To(Equal(20.0))
		})
	})

	Describe("auxiliary endpoints", func() {
		It("serves the health probe", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var health rest.HealthResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &health)).To(Succeed())
			Expect(health.Success).To(BeTrue())
			Expect(health.Message).To(Equal("Expense Tracker API is running"))
			Expect(health.Timestamp).ToNot(BeEmpty())
		})

		It("serves the recommended categories", func() {
			rec, env := request(http.MethodGet, "/api/categories", "")

			Expect(rec.Code).To(Equal(http.StatusOK))
			var categories []string
			Expect(json.Unmarshal(env.Data, &categories)).To(Succeed())
			Expect(categories).To(ContainElement("Food & Dining"))
		})

		It("answers unmatched routes with the fixed 404 envelope", func() {
			rec, env := request(http.MethodGet, "/api/nope", "")

			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("Route not found"))
		})

		It("allows the configured origin with credentials", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:5173"))
			Expect(rec.Header().Get("Access-Control-Allow-Credentials")).To(Equal("true"))
		})

		It("sets no CORS headers for unknown origins", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			req.Header.Set("Origin", "http://evil.example")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		})
	})
})
