// Package gormstore is the durable alternative to the in-memory
// store, backed by a file-local sqlite database. The schema lives in
// db/migrations and is applied with the migrate command.
package gormstore

import (
	"errors"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) expense.Repository {
	return &Store{db: db}
}

func (s *Store) List(filter expense.Filter) ([]*expense.Expense, error) {
	q := s.db.Model(&expense.Expense{})

	if filter.Category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", filter.Category)
	}
	// date() yields NULL for unparseable input, which satisfies no
	// comparison; that matches the memory store's exclusion rule
	if filter.StartDate != "" {
		q = q.Where("date(substr(date, 1, 10)) >= date(?)", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("date(substr(date, 1, 10)) <= date(?)", filter.EndDate)
	}

	var expenses []*expense.Expense
	err := q.Order("date DESC, id ASC").Find(&expenses).Error
	return expenses, err
}

func (s *Store) GetByID(id int64) (*expense.Expense, error) {
	var exp expense.Expense
	err := s.db.Where("id = ?", id).First(&exp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrExpenseNotFound
		}
		return nil, err
	}
	return &exp, nil
}

func (s *Store) Create(exp *expense.Expense) error {
	return s.db.Create(exp).Error
}

func (s *Store) Update(exp *expense.Expense) error {
	tx := s.db.Model(&expense.Expense{}).
		Where("id = ?", exp.ID).
		Updates(map[string]interface{}{
			"title":       exp.Title,
			"amount":      exp.Amount,
			"category":    exp.Category,
			"date":        exp.Date,
			"description": exp.Description,
			"updated_at":  exp.UpdatedAt,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return internal.ErrExpenseNotFound
	}
	return nil
}

func (s *Store) Delete(id int64) (*expense.Expense, error) {
	exp, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(&expense.Expense{}, id).Error; err != nil {
		return nil, err
	}
	return exp, nil
}

func (s *Store) Stats() (*expense.Stats, error) {
	stats := &expense.Stats{
		CategoryStats: make(map[string]expense.BucketStat),
		MonthlyStats:  make(map[string]expense.BucketStat),
	}

	var totals struct {
		Count  int
		Amount float64
	}
	err := s.db.Model(&expense.Expense{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	stats.TotalExpenses = totals.Count
	stats.TotalAmount = totals.Amount
	if totals.Count > 0 {
		stats.AverageAmount = totals.Amount / float64(totals.Count)
	}

	type bucketRow struct {
		Key    string
		Count  int
		Amount float64
	}

	var byCategory []bucketRow
	err = s.db.Model(&expense.Expense{}).
		Select("category AS key, COUNT(*) AS count, SUM(amount) AS amount").
		Group("category").
		Scan(&byCategory).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byCategory {
		stats.CategoryStats[row.Key] = expense.BucketStat{Count: row.Count, Amount: row.Amount}
	}

	var byMonth []bucketRow
	err = s.db.Model(&expense.Expense{}).
		Select("substr(date, 1, 7) AS key, COUNT(*) AS count, SUM(amount) AS amount").
		Group("substr(date, 1, 7)").
		Scan(&byMonth).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byMonth {
		stats.MonthlyStats[row.Key] = expense.BucketStat{Count: row.Count, Amount: row.Amount}
	}

	return stats, nil
}
