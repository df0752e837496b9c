package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense/gormstore"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with sample expenses",
	Long:  `Seed the sqlite store with sample expenses for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		if cfg.Storage.Driver != internal.StorageDriverSQLite {
			log.Fatal("seed requires storage.driver: sqlite; the memory store does not outlive the command")
		}

		db, err := gorm.Open(sqlite.Open(cfg.Storage.Path), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}

		service := expense.NewService(gormstore.NewStore(db), logger.L())

		for _, sample := range sampleExpenses() {
			created, err := service.CreateExpense(sample)
			if err != nil {
				log.Fatalf("failed to seed expense: %v", err)
			}
			fmt.Printf("Seeded expense %d: %s (%.2f)\n", created.ID, created.Title, created.Amount)
		}
	},
}

func sampleExpenses() []expense.ExpensePayload {
	str := func(s string) *string { return &s }
	amt := func(v float64) *expense.Amount { return &expense.Amount{Value: v, Valid: true} }

	return []expense.ExpensePayload{
		{
			Title:       str("Lunch at the corner cafe"),
			Amount:      amt(12.50),
			Category:    str("Food & Dining"),
			Date:        str("2024-03-01"),
			Description: str("Weekday lunch"),
		},
		{
			Title:    str("Monthly metro pass"),
			Amount:   amt(75),
			Category: str("Transportation"),
			Date:     str("2024-03-01"),
		},
		{
			Title:       str("Electricity bill"),
			Amount:      amt(58.20),
			Category:    str("Bills & Utilities"),
			Date:        str("2024-02-27"),
			Description: str("February usage"),
		},
		{
			Title:    str("Cinema tickets"),
			Amount:   amt(24),
			Category: str("Entertainment"),
			Date:     str("2024-02-24"),
		},
		{
			Title:       str("Pharmacy"),
			Amount:      amt(9.80),
			Category:    str("Healthcare"),
			Date:        str("2024-02-20"),
			Description: str("Cold medicine"),
		},
	}
}
