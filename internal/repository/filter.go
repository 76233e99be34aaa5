package repository

import (
	"cashflow/internal/models"

	"gorm.io/gorm"
)

// applyFilter ANDs every supplied criterion onto tx. Exact matches only,
// so each condition can use its column index.
func applyFilter(tx *gorm.DB, f models.Filter) *gorm.DB {
	if f.DateFrom != nil {
		tx = tx.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		tx = tx.Where("date <= ?", *f.DateTo)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		tx = tx.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		tx = tx.Where("category = ?", f.Category)
	}
	if f.Subcategory != "" {
		tx = tx.Where("subcategory = ?", f.Subcategory)
	}
	return tx
}

// ordered sorts newest first; id breaks ties between entries sharing a date.
func ordered(tx *gorm.DB) *gorm.DB {
	return tx.Order("date DESC, id DESC")
}
